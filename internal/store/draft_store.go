package store

import (
	"encoding/json"

	"github.com/fadilmartias/careers-portal/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

// DraftKey is the snapshot key prefix; each draft session appends its ID.
const DraftKey = "kk-careers-form-data"

// SnapshotKey is the KV key holding the snapshot of one draft session.
func SnapshotKey(draftID string) string {
	return DraftKey + ":" + draftID
}

// DraftStore owns one ApplicationDraft. Every mutation writes a sanitized
// snapshot to the KV; a failed write never undoes the in-memory change.
// Not safe for concurrent use.
type DraftStore struct {
	kv    KV
	key   string
	draft model.ApplicationDraft
}

// NewDraftStore restores the snapshot under key, falling back to an empty draft
// when it is absent or unreadable.
func NewDraftStore(kv KV, key string) *DraftStore {
	s := &DraftStore{kv: kv, key: key, draft: model.NewDraft()}
	s.restore()
	return s
}

func (s *DraftStore) restore() {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		log.Errorf("draft store: load %s: %v", s.key, err)
		return
	}
	if !ok || raw == "" {
		return
	}
	var d model.ApplicationDraft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		log.Errorf("draft store: parse %s: %v", s.key, err)
		return
	}
	d.Normalize()
	s.draft = d
}

// Draft returns a copy of the whole draft.
func (s *DraftStore) Draft() model.ApplicationDraft {
	return s.draft.Clone()
}

// StepData returns the projection of the draft for one step.
func (s *DraftStore) StepData(step model.Step) (model.StepData, error) {
	return s.draft.Clone().StepData(step)
}

// Update shallow-merges p into the draft.
func (s *DraftStore) Update(p model.DraftPatch) {
	p.Apply(&s.draft)
	s.persist()
}

// Mutate applies fn to the draft in place, re-normalizes and persists.
func (s *DraftStore) Mutate(fn func(d *model.ApplicationDraft)) {
	fn(&s.draft)
	s.draft.Normalize()
	s.persist()
}

// Clear resets the draft to its empty defaults and deletes the snapshot.
func (s *DraftStore) Clear() {
	s.draft = model.NewDraft()
	if err := s.kv.Remove(s.key); err != nil {
		log.Errorf("draft store: remove %s: %v", s.key, err)
	}
}

func (s *DraftStore) persist() {
	b, err := json.Marshal(s.draft.Sanitized())
	if err != nil {
		log.Errorf("draft store: encode %s: %v", s.key, err)
		return
	}
	if err := s.kv.Set(s.key, string(b)); err != nil {
		log.Errorf("draft store: save %s: %v", s.key, err)
	}
}
