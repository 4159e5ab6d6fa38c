package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/TeamCybershoora/CS-Rippers-sub001/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OTPTTL is how long an issued code stays valid.
const OTPTTL = 10 * time.Minute

// AdminMaxAttempts caps wrong guesses on the admin flow. Login and
// registration flows carry no cap.
const AdminMaxAttempts = 3

type OTPResult int

const (
	OTPMatched OTPResult = iota
	OTPMismatch
	OTPExpired
	OTPTooManyAttempts
	OTPNotFound
)

func (r OTPResult) String() string {
	switch r {
	case OTPMatched:
		return "matched"
	case OTPMismatch:
		return "mismatch"
	case OTPExpired:
		return "expired"
	case OTPTooManyAttempts:
		return "too_many_attempts"
	case OTPNotFound:
		return "not_found"
	}
	return "unknown"
}

// OTPMailer is the slice of the email service the engine needs.
type OTPMailer interface {
	SendOTPEmail(ctx context.Context, data OTPEmailData) error
}

// OTPStore keeps at most one live record per subject.
type OTPStore interface {
	Put(ctx context.Context, rec models.OTPRecord) error
	Get(ctx context.Context, subject string) (*models.OTPRecord, error)
	Delete(ctx context.Context, subject string) error
	IncrementAttempts(ctx context.Context, subject string) (int, error)
}

// GenerateOTPCode returns a 6-digit decimal code uniformly distributed in
// [100000, 999999].
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// OTPEngine issues and verifies one-time codes against a store, delivering
// them through the email service.
type OTPEngine struct {
	store       OTPStore
	mailer      OTPMailer
	ttl         time.Duration
	maxAttempts int // 0 disables the cap
}

func NewOTPEngine(store OTPStore, mailer OTPMailer, maxAttempts int) *OTPEngine {
	return &OTPEngine{
		store:       store,
		mailer:      mailer,
		ttl:         OTPTTL,
		maxAttempts: maxAttempts,
	}
}

// Issue generates a fresh code for the subject, unconditionally overwriting
// any previous record, and mails it. If delivery fails the record is rolled
// back before the error is returned: an issued-but-undelivered code must
// never remain valid.
func (e *OTPEngine) Issue(ctx context.Context, subject, name string) (string, error) {
	code, err := GenerateOTPCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	rec := models.OTPRecord{
		Subject:  subject,
		Code:     code,
		IssuedAt: time.Now(),
		Attempts: 0,
	}
	if err := e.store.Put(ctx, rec); err != nil {
		return "", fmt.Errorf("failed to save OTP: %w", err)
	}

	data := OTPEmailData{
		Email:     subject,
		Name:      name,
		OTPCode:   code,
		ExpiresIn: int(e.ttl.Minutes()),
	}
	if err := e.mailer.SendOTPEmail(ctx, data); err != nil {
		if delErr := e.store.Delete(ctx, subject); delErr != nil {
			return "", fmt.Errorf("failed to send OTP email: %v (rollback also failed: %w)", err, delErr)
		}
		return "", fmt.Errorf("failed to send OTP email: %w", err)
	}

	return code, nil
}

// Verify checks a claimed code against the live record for the subject. The
// second return value is the number of attempts remaining after a mismatch
// on a capped flow; it is zero otherwise.
func (e *OTPEngine) Verify(ctx context.Context, subject, claimed string) (OTPResult, int, error) {
	rec, err := e.store.Get(ctx, subject)
	if err != nil {
		return OTPNotFound, 0, err
	}
	if rec == nil {
		return OTPNotFound, 0, nil
	}

	if time.Since(rec.IssuedAt) > e.ttl {
		if err := e.store.Delete(ctx, subject); err != nil {
			return OTPExpired, 0, err
		}
		return OTPExpired, 0, nil
	}

	if e.maxAttempts > 0 && rec.Attempts >= e.maxAttempts {
		if err := e.store.Delete(ctx, subject); err != nil {
			return OTPTooManyAttempts, 0, err
		}
		return OTPTooManyAttempts, 0, nil
	}

	if claimed != rec.Code {
		attempts, err := e.store.IncrementAttempts(ctx, subject)
		if err != nil {
			return OTPMismatch, 0, err
		}
		if e.maxAttempts > 0 {
			if attempts >= e.maxAttempts {
				if err := e.store.Delete(ctx, subject); err != nil {
					return OTPTooManyAttempts, 0, err
				}
				return OTPTooManyAttempts, 0, nil
			}
			return OTPMismatch, e.maxAttempts - attempts, nil
		}
		return OTPMismatch, 0, nil
	}

	// Single use: a matched code is destroyed.
	if err := e.store.Delete(ctx, subject); err != nil {
		return OTPMatched, 0, err
	}
	return OTPMatched, 0, nil
}

// MemoryOTPStore keeps records in a mutex-guarded map. Used for the admin
// flow; contents are lost on process restart, which is an accepted
// limitation.
type MemoryOTPStore struct {
	mu      sync.Mutex
	records map[string]models.OTPRecord
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{records: make(map[string]models.OTPRecord)}
}

func (s *MemoryOTPStore) Put(_ context.Context, rec models.OTPRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Subject] = rec
	return nil
}

func (s *MemoryOTPStore) Get(_ context.Context, subject string) (*models.OTPRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[subject]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryOTPStore) Delete(_ context.Context, subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, subject)
	return nil
}

func (s *MemoryOTPStore) IncrementAttempts(_ context.Context, subject string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[subject]
	if !ok {
		return 0, fmt.Errorf("no OTP record for %s", subject)
	}
	rec.Attempts++
	s.records[subject] = rec
	return rec.Attempts, nil
}

// UserOTPStore persists the record as the otp field on the user document in
// the given collection. Survives restarts, and is visible to any reader of
// the user record, a weaker confidentiality property than the in-memory
// store.
type UserOTPStore struct {
	db         *mongo.Database
	collection string
}

func NewUserOTPStore(db *mongo.Database, collection string) *UserOTPStore {
	return &UserOTPStore{db: db, collection: collection}
}

func (s *UserOTPStore) Put(ctx context.Context, rec models.OTPRecord) error {
	res, err := s.db.Collection(s.collection).UpdateOne(ctx,
		bson.M{"email": rec.Subject},
		bson.M{"$set": bson.M{"otp": bson.M{
			"code":      rec.Code,
			"issued_at": rec.IssuedAt,
			"attempts":  rec.Attempts,
		}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no user with email %s", rec.Subject)
	}
	return nil
}

func (s *UserOTPStore) Get(ctx context.Context, subject string) (*models.OTPRecord, error) {
	var user models.UserAccount
	err := s.db.Collection(s.collection).FindOne(ctx, bson.M{"email": subject}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if user.OTP == nil {
		return nil, nil
	}
	rec := *user.OTP
	rec.Subject = subject
	return &rec, nil
}

func (s *UserOTPStore) Delete(ctx context.Context, subject string) error {
	_, err := s.db.Collection(s.collection).UpdateOne(ctx,
		bson.M{"email": subject},
		bson.M{"$unset": bson.M{"otp": ""}},
	)
	return err
}

func (s *UserOTPStore) IncrementAttempts(ctx context.Context, subject string) (int, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.UserAccount
	err := s.db.Collection(s.collection).FindOneAndUpdate(ctx,
		bson.M{"email": subject, "otp": bson.M{"$exists": true}},
		bson.M{"$inc": bson.M{"otp.attempts": 1}},
		opts,
	).Decode(&user)
	if err != nil {
		return 0, err
	}
	if user.OTP == nil {
		return 0, fmt.Errorf("no OTP record for %s", subject)
	}
	return user.OTP.Attempts, nil
}
