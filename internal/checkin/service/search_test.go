package service_test

import (
	"context"

	"go.uber.org/mock/gomock"

	"doorlist/internal/checkin/service"
	eventModels "doorlist/internal/event/models"
	guestModels "doorlist/internal/guest/models"
	"doorlist/internal/resolver"
	dErrors "doorlist/pkg/domain-errors"
)

func (s *ServiceSuite) TestNameSearchStopsAtFound() {
	s.resolver.EXPECT().
		ResolveName(gomock.Any(), "evt-42", "ana").
		Return([]*guestModels.Guest{s.guest()}, nil)
	s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(s.openEvent(), nil)
	// Typed names never auto-confirm; MarkCheckedIn must not be called.

	attempt, err := s.svc.SubmitName(context.Background(), "evt-42", "ana")
	s.Require().NoError(err)
	s.Equal(service.StateFound, attempt.State)
	s.Equal("gst-7", attempt.Guest.ID)
	s.Empty(attempt.Candidates)
	s.Zero(s.publisher.count())
}

func (s *ServiceSuite) TestNameSearchNotFound() {
	s.resolver.EXPECT().
		ResolveName(gomock.Any(), "evt-42", "zelda").
		Return(nil, nil)

	attempt, err := s.svc.SubmitName(context.Background(), "evt-42", "zelda")
	s.Require().NoError(err)
	s.Equal(service.StateNotFound, attempt.State)
}

func (s *ServiceSuite) TestAmbiguousSearchRequiresSelection() {
	twin := s.guest()
	twin.ID = "gst-8"
	twin.Table = "3"

	s.resolver.EXPECT().
		ResolveName(gomock.Any(), "evt-42", "ana").
		Return([]*guestModels.Guest{s.guest(), twin}, nil)
	s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(s.openEvent(), nil)

	attempt, err := s.svc.SubmitName(context.Background(), "evt-42", "ana")
	s.Require().NoError(err)
	s.Equal(service.StateFound, attempt.State)
	s.Nil(attempt.Guest)
	s.Len(attempt.Candidates, 2)

	s.Run("confirm without selection is rejected", func() {
		_, err := s.svc.Confirm(context.Background())
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeInvalidState))
	})

	s.Run("selection collapses to one guest", func() {
		attempt, err := s.svc.Select(context.Background(), "gst-8")
		s.Require().NoError(err)
		s.Equal(service.StateFound, attempt.State)
		s.Equal("gst-8", attempt.Guest.ID)
		s.Empty(attempt.Candidates)
	})

	s.Run("confirm after selection checks in the chosen guest", func() {
		checkedIn := twin
		at := s.now
		checkedIn.CheckedInAt = &at
		s.writer.EXPECT().MarkCheckedIn(gomock.Any(), "gst-8").Return(checkedIn, nil)
		s.gallery.EXPECT().IssueAccessLink("gst-8", "evt-42").Return("https://g/x", nil)

		attempt, err := s.svc.Confirm(context.Background())
		s.Require().NoError(err)
		s.Equal(service.StateConfirmed, attempt.State)
		s.Equal("gst-8", attempt.Guest.ID)
	})
}

func (s *ServiceSuite) TestSelectRejectsGuestOutsideCandidateSet() {
	twin := s.guest()
	twin.ID = "gst-8"

	s.resolver.EXPECT().
		ResolveName(gomock.Any(), "evt-42", "ana").
		Return([]*guestModels.Guest{s.guest(), twin}, nil)
	s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(s.openEvent(), nil)

	_, err := s.svc.SubmitName(context.Background(), "evt-42", "ana")
	s.Require().NoError(err)

	attempt, err := s.svc.Select(context.Background(), "gst-999")
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	s.Len(attempt.Candidates, 2)
}

func (s *ServiceSuite) TestSelectWithoutPendingSearch() {
	_, err := s.svc.Select(context.Background(), "gst-7")
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeInvalidState))
}

func (s *ServiceSuite) TestSelectingCheckedInCandidateShortCircuits() {
	done := s.checkedInGuest()
	done.ID = "gst-8"

	s.resolver.EXPECT().
		ResolveName(gomock.Any(), "evt-42", "ana").
		Return([]*guestModels.Guest{s.guest(), done}, nil)
	s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(s.openEvent(), nil)

	_, err := s.svc.SubmitName(context.Background(), "evt-42", "ana")
	s.Require().NoError(err)

	attempt, err := s.svc.Select(context.Background(), "gst-8")
	s.Require().NoError(err)
	s.Equal(service.StateConfirmed, attempt.State)
	s.True(attempt.AlreadyCheckedIn)
	s.Zero(s.publisher.count())
}

func (s *ServiceSuite) TestCrossEventSearchCarriesEventMetadata() {
	other := s.guest()
	other.ID = "gst-20"
	other.EventID = "evt-77"
	otherEvent := &eventModels.Event{ID: "evt-77", Name: "Gala", StartsAt: s.now}

	s.resolver.EXPECT().
		ResolveNameAnyEvent(gomock.Any(), "ana").
		Return([]resolver.Match{
			{Guest: s.guest(), Event: s.openEvent()},
			{Guest: other, Event: otherEvent},
		}, nil)

	attempt, err := s.svc.SubmitNameAnyEvent(context.Background(), "ana")
	s.Require().NoError(err)
	s.Equal(service.StateFound, attempt.State)
	s.Require().Len(attempt.Candidates, 2)
	s.Equal("evt-77", attempt.Candidates[1].Event.ID)
}

func (s *ServiceSuite) TestEmptyNameSurfacesValidationError() {
	s.resolver.EXPECT().
		ResolveName(gomock.Any(), "evt-42", "").
		Return(nil, dErrors.New(dErrors.CodeInvalidInput, "name is required"))

	attempt, err := s.svc.SubmitName(context.Background(), "evt-42", "")
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	s.Equal(service.StateIdle, attempt.State)
}

func (s *ServiceSuite) TestNewSearchReplacesFinishedAttempt() {
	s.resolver.EXPECT().
		ResolveName(gomock.Any(), "evt-42", "ana").
		Return([]*guestModels.Guest{s.guest()}, nil)
	s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(s.openEvent(), nil)

	_, err := s.svc.SubmitName(context.Background(), "evt-42", "ana")
	s.Require().NoError(err)

	s.resolver.EXPECT().
		ResolveName(gomock.Any(), "evt-42", "zelda").
		Return(nil, nil)

	attempt, err := s.svc.SubmitName(context.Background(), "evt-42", "zelda")
	s.Require().NoError(err)
	s.Equal(service.StateNotFound, attempt.State)
	s.Nil(attempt.Guest)
}
