package form

import (
	"context"
	"errors"
	"omnihub/autofill"
	"omnihub/constants"
	"omnihub/types"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrFormClosed       = errors.New("add-game form is not open")
	ErrAutofillInFlight = errors.New("autofill is already running")
	ErrTitleRequired    = errors.New("a title is required")
	ErrUnknownPlatform  = errors.New("unknown platform")
)

// Fetcher resolves metadata for a title, reporting absence as false.
type Fetcher interface {
	Fetch(ctx context.Context, title string) (types.Metadata, bool)
}

// Form is the add-game form. Each Open starts a new session; autofill
// results are only applied to the session that requested them.
type Form struct {
	mu       sync.Mutex
	open     bool
	session  string
	draft    types.GameDraft
	autofill types.AutofillState
	found    bool
}

// New returns a closed form.
func New() *Form {
	return &Form{autofill: types.AutofillIdle}
}

// DefaultDraft is the draft a freshly opened form starts from.
func DefaultDraft() types.GameDraft {
	return types.GameDraft{
		Platform: types.PlatformSteam,
		CoverURL: constants.DefaultCoverURL,
	}
}

// Open starts a new form session, discarding any previous draft.
func (f *Form) Open() types.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.open = true
	f.session = uuid.NewString()
	f.draft = DefaultDraft()
	f.autofill = types.AutofillIdle
	f.found = false
	return f.snapshot()
}

// Cancel closes the form and drops its draft. A pending autofill result
// will be ignored.
func (f *Form) Cancel() types.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
	return f.snapshot()
}

// Update replaces the user editable fields of the draft.
func (f *Form) Update(draft types.GameDraft) (types.FormState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open {
		return f.snapshot(), ErrFormClosed
	}
	f.draft = draft
	return f.snapshot(), nil
}

// BeginAutofill moves the form to pending and returns the session token the
// result has to be completed with, plus the title to look up.
func (f *Form) BeginAutofill() (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case !f.open:
		return "", "", ErrFormClosed
	case f.autofill == types.AutofillPending:
		return "", "", ErrAutofillInFlight
	}

	title := strings.TrimSpace(f.draft.Title)
	if title == "" {
		return "", "", ErrTitleRequired
	}

	f.autofill = types.AutofillPending
	return f.session, title, nil
}

// CompleteAutofill applies a lookup result. It reports false when the session
// that started the lookup is gone, in which case nothing changes.
func (f *Form) CompleteAutofill(token string, md types.Metadata, ok bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open || token != f.session || f.autofill != types.AutofillPending {
		return false
	}

	f.autofill = types.AutofillResolved
	f.found = ok
	if !ok {
		return true
	}

	if md.Title != "" {
		f.draft.Title = md.Title
		f.draft.CoverURL = autofill.CoverURL(md.Title)
	}
	if md.Genre != "" {
		f.draft.Genre = md.Genre
	}
	if md.Description != "" {
		f.draft.Description = md.Description
	}
	return true
}

// Autofill runs a whole lookup for the current draft.
func (f *Form) Autofill(ctx context.Context, fetcher Fetcher) (types.FormState, error) {
	token, title, err := f.BeginAutofill()
	if err != nil {
		return f.Snapshot(), err
	}
	f.Run(ctx, fetcher, token, title)
	return f.Snapshot(), nil
}

// Run performs the lookup started by BeginAutofill and applies its result.
// The fetch happens without the lock held so the form stays responsive.
func (f *Form) Run(ctx context.Context, fetcher Fetcher, token, title string) bool {
	md, ok := fetcher.Fetch(ctx, title)
	return f.CompleteAutofill(token, md, ok)
}

// AddFunc stores a submitted draft. added reports whether the game made it
// into the library, even when err is also set.
type AddFunc func(draft types.GameDraft) (added bool, err error)

// Submit validates the draft and passes it to add. A closed form or an
// incomplete draft is rejected without calling add. The form closes only
// once the game was added; otherwise it stays open with the draft intact.
func (f *Form) Submit(add AddFunc) (types.GameDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.open {
		return types.GameDraft{}, ErrFormClosed
	}
	if strings.TrimSpace(f.draft.Title) == "" {
		return types.GameDraft{}, ErrTitleRequired
	}
	if !f.draft.Platform.Valid() {
		return types.GameDraft{}, ErrUnknownPlatform
	}

	draft := f.draft
	added, err := add(draft)
	if added {
		f.reset()
	}
	return draft, err
}

// Snapshot returns the current state.
func (f *Form) Snapshot() types.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

func (f *Form) snapshot() types.FormState {
	return types.FormState{
		Open:     f.open,
		Draft:    f.draft,
		Autofill: f.autofill,
		Found:    f.found,
	}
}

func (f *Form) reset() {
	f.open = false
	f.session = ""
	f.draft = types.GameDraft{}
	f.autofill = types.AutofillIdle
	f.found = false
}
