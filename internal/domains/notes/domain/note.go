package domain

import (
	"errors"
	"strings"
	"time"

	trackingdomain "github.com/Apurer/dbmodel-tracking/internal/tracking/domain"
)

var (
	ErrEmptyTitle = errors.New("note title is required")
	ErrEmptyTag   = errors.New("note tags must not be blank")
)

// Note is the aggregate managed by the notes bounded context.
type Note struct {
	ID       int64
	Title    string
	Body     string
	Tags     []string
	Archived bool
	info     *trackingdomain.TrackedEntity
}

var _ trackingdomain.Trackable = (*Note)(nil)

// NewNote validates the invariants and builds a new Note aggregate.
func NewNote(id int64, title, body string) (*Note, error) {
	n := &Note{ID: id}
	if err := n.Rename(title); err != nil {
		return nil, err
	}
	n.Rewrite(body)
	return n, nil
}

// EntityInfo returns the tracked metadata, nil until the note is stamped.
func (n *Note) EntityInfo() *trackingdomain.TrackedEntity {
	return n.info
}

// SetEntityInfo replaces the tracked metadata.
func (n *Note) SetEntityInfo(info *trackingdomain.TrackedEntity) {
	n.info = info
}

// Rename trims and validates the title.
func (n *Note) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	n.Title = title
	return nil
}

// Rewrite replaces the body.
func (n *Note) Rewrite(body string) {
	n.Body = body
}

// ReplaceTags swaps the tag set, rejecting blank tags.
func (n *Note) ReplaceTags(tags []string) error {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return ErrEmptyTag
		}
		cleaned = append(cleaned, tag)
	}
	n.Tags = cleaned
	return nil
}

// Archive marks the note as archived.
func (n *Note) Archive() {
	n.Archived = true
}

// IsStale reports whether an active note has not changed since cutoff.
func (n *Note) IsStale(cutoff time.Time) bool {
	if n.Archived || n.info == nil {
		return false
	}
	return n.info.LastChangedAt().Before(cutoff)
}

// Clone returns a deep copy, including tracked metadata.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	if n.Tags != nil {
		c.Tags = append([]string{}, n.Tags...)
	}
	c.info = n.info.Clone()
	return &c
}
