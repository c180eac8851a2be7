package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"doorlist/internal/guest/models"
	"doorlist/internal/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = New()
	for _, g := range []*models.Guest{
		{ID: "gst-1", EventID: "evt-42", Name: "Maria Silva", Table: "7"},
		{ID: "gst-2", EventID: "evt-42", Name: "María Silva", Table: "12"},
		{ID: "gst-3", EventID: "evt-42", Name: "João do Carmo"},
		{ID: "gst-4", EventID: "evt-99", Name: "Maria Silva"},
	} {
		s.Require().NoError(s.store.Save(s.ctx, g))
	}
}

func (s *MemoryStoreSuite) TestFindByID() {
	s.Run("scoped to event", func() {
		g, err := s.store.FindByID(s.ctx, "gst-1", "evt-42")
		s.Require().NoError(err)
		s.Equal("Maria Silva", g.Name)
	})

	s.Run("wrong event is not found", func() {
		_, err := s.store.FindByID(s.ctx, "gst-1", "evt-99")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("empty event matches any event", func() {
		g, err := s.store.FindByID(s.ctx, "gst-4", "")
		s.Require().NoError(err)
		s.Equal("evt-99", g.EventID)
	})

	s.Run("unknown id", func() {
		_, err := s.store.FindByID(s.ctx, "gst-404", "")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestFindByNameFoldsAccentsAndCase() {
	got, err := s.store.FindByName(s.ctx, "evt-42", "maria silva")
	s.Require().NoError(err)
	s.Len(got, 2)
	s.Equal("gst-1", got[0].ID)
	s.Equal("gst-2", got[1].ID)

	got, err = s.store.FindByName(s.ctx, "evt-42", "JOAO")
	s.Require().NoError(err)
	s.Len(got, 1)
	s.Equal("gst-3", got[0].ID)
}

func (s *MemoryStoreSuite) TestFindByNameAnyEvent() {
	got, err := s.store.FindByNameAnyEvent(s.ctx, "Maria Silva")
	s.Require().NoError(err)
	s.Len(got, 3)
}

func (s *MemoryStoreSuite) TestFindByNameNoMatches() {
	got, err := s.store.FindByName(s.ctx, "evt-42", "nobody here")
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *MemoryStoreSuite) TestMarkCheckedInIsIdempotent() {
	at := time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC)
	s.store.WithClock(func() time.Time { return at })

	first, err := s.store.MarkCheckedIn(s.ctx, "gst-1")
	s.Require().NoError(err)
	s.Require().NotNil(first.CheckedInAt)
	s.Equal(at, *first.CheckedInAt)

	// A later repeat call must observe the original timestamp.
	s.store.WithClock(func() time.Time { return at.Add(time.Hour) })
	second, err := s.store.MarkCheckedIn(s.ctx, "gst-1")
	s.Require().NoError(err)
	s.Equal(*first.CheckedInAt, *second.CheckedInAt)
}

func (s *MemoryStoreSuite) TestMarkCheckedInUnknownGuest() {
	_, err := s.store.MarkCheckedIn(s.ctx, "gst-404")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestSaveCopiesRecord() {
	g := &models.Guest{ID: "gst-9", EventID: "evt-42", Name: "Ana"}
	s.Require().NoError(s.store.Save(s.ctx, g))
	g.Name = "mutated"

	stored, err := s.store.FindByID(s.ctx, "gst-9", "")
	s.Require().NoError(err)
	s.Equal("Ana", stored.Name)
}
