package lead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"gorm.io/datatypes"

	"majesty_backend/internal/model"
)

// Input is the raw form payload a surface submits.
type Input struct {
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Message      string   `json:"message"`
	InterestedIn []string `json:"interested_in"`
	Agreement    bool     `json:"agreement"`
}

// Download is the brochure side effect of a gated submission. Err is a
// distinct, non-blocking failure: the lead itself already persisted.
type Download struct {
	URL      string `json:"url,omitempty"`
	FileName string `json:"file_name,omitempty"`
	Err      string `json:"error,omitempty"`
}

// Result of a successful submission.
type Result struct {
	Lead     *model.Lead
	Download *Download
}

// ErrSubmissionInFlight is returned when a form instance submits again
// before its previous submission reached a terminal state.
var ErrSubmissionInFlight = errors.New("a submission is already in flight for this form")

// PersistenceError is fatal to a submission attempt; the caller should
// tell the user to retry.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not persist lead: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Repository is the persistence collaborator.
type Repository interface {
	CreateLead(ctx context.Context, lead *model.Lead) error
	FeaturedBrochure(ctx context.Context) (*model.Brochure, error)
	UpdateDownloadCount(ctx context.Context, id uint, newCount uint) error
}

// Notifier is the best-effort notification collaborator.
type Notifier interface {
	SendLeadNotification(lead *model.Lead) error
}

// URLResolver resolves public file URLs for download side effects.
type URLResolver interface {
	PublicURL(bucket, path string) string
}

// Service runs the lead submission pipeline: validate, persist, notify
// best-effort, then trigger the brochure download side effect for the
// surfaces that carry one.
type Service struct {
	repo           Repository
	notifier       Notifier
	urls           URLResolver
	brochureBucket string

	mu       sync.Mutex
	inflight map[string]struct{}

	notifyWG sync.WaitGroup
}

func NewService(repo Repository, notifier Notifier, urls URLResolver, brochureBucket string) *Service {
	return &Service{
		repo:           repo,
		notifier:       notifier,
		urls:           urls,
		brochureBucket: brochureBucket,
		inflight:       make(map[string]struct{}),
	}
}

// Submit runs the pipeline for one form instance, identified by key
// (session + surface). Duplicate submits while one is in flight return
// ErrSubmissionInFlight so a form can never persist the same lead twice
// concurrently.
func (s *Service) Submit(ctx context.Context, key string, formType FormType, in Input) (*Result, error) {
	formType, policy := policyFor(formType)
	if policy.ForcesConsent {
		in.Agreement = true
	}

	if errs := validateInput(in, policy); errs != nil {
		return nil, errs
	}

	if !s.begin(key) {
		return nil, ErrSubmissionInFlight
	}
	defer s.end(key)

	interested, err := json.Marshal(in.InterestedIn)
	if err != nil {
		return nil, fmt.Errorf("could not encode interested_in: %v", err)
	}

	lead := &model.Lead{
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		Message:      in.Message,
		InterestedIn: datatypes.JSON(interested),
		FormType:     string(formType),
		Agreement:    in.Agreement,
		Status:       model.LeadStatusNew,
	}

	if err := s.repo.CreateLead(ctx, lead); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	// Notification is advisory: it runs off the request path, its
	// failure is logged and never shown to the user, and it never rolls
	// back the persisted lead.
	s.notifyWG.Add(1)
	go func() {
		defer s.notifyWG.Done()
		if err := s.notifier.SendLeadNotification(lead); err != nil {
			log.Printf("Could not send lead notification for lead %d: %v", lead.ID, err)
		}
	}()

	result := &Result{Lead: lead}
	if policy.DownloadsBrochure {
		result.Download = s.resolveDownload(ctx)
	}

	return result, nil
}

// resolveDownload prepares the brochure download that follows a gated
// submission. Any failure here is reported in Download.Err and must not
// affect the already-persisted lead.
func (s *Service) resolveDownload(ctx context.Context) *Download {
	brochure, err := s.repo.FeaturedBrochure(ctx)
	if err != nil || brochure == nil {
		return &Download{Err: "No brochure is available for download."}
	}

	if err := s.repo.UpdateDownloadCount(ctx, brochure.ID, brochure.DownloadCount+1); err != nil {
		log.Printf("Could not update download count for brochure %d: %v", brochure.ID, err)
		return &Download{Err: "Failed to update download count."}
	}

	url := s.urls.PublicURL(s.brochureBucket, brochure.FilePath)
	if url == "" {
		return &Download{Err: "Failed to get brochure file URL."}
	}

	return &Download{URL: url, FileName: brochure.Title}
}

// Flush waits for in-flight notifications. Used by tests and during
// shutdown.
func (s *Service) Flush() {
	s.notifyWG.Wait()
}

func (s *Service) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Service) end(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}
