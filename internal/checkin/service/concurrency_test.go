package service_test

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"doorlist/internal/checkin/service"
	guestModels "doorlist/internal/guest/models"
	dErrors "doorlist/pkg/domain-errors"
)

// These tests block a collaborator on a channel to hold the orchestrator in
// a chosen phase, then poke it from another goroutine.

func (s *ServiceSuite) TestInputRejectedWhileSearching() {
	entered := make(chan struct{})
	release := make(chan struct{})

	s.resolver.EXPECT().
		ResolveName(gomock.Any(), "evt-42", "ana").
		DoAndReturn(func(context.Context, string, string) ([]*guestModels.Guest, error) {
			close(entered)
			<-release
			return []*guestModels.Guest{s.guest()}, nil
		})
	s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(s.openEvent(), nil)

	done := make(chan service.Attempt, 1)
	go func() {
		attempt, err := s.svc.SubmitName(context.Background(), "evt-42", "ana")
		s.NoError(err)
		done <- attempt
	}()

	<-entered
	s.Equal(service.StateSearching, s.svc.Current().State)

	s.Run("new name input is rejected", func() {
		_, err := s.svc.SubmitName(context.Background(), "evt-42", "bruno")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeInvalidState))
	})

	s.Run("new scan input is rejected", func() {
		_, err := s.svc.SubmitScan(context.Background(), "evt-42", "c290-aaaa-guest-1")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeInvalidState))
	})

	s.Run("reset is rejected", func() {
		err := s.svc.Reset()
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeInvalidState))
	})

	close(release)
	select {
	case attempt := <-done:
		s.Equal(service.StateFound, attempt.State)
		s.Equal("gst-7", attempt.Guest.ID)
	case <-time.After(time.Second):
		s.FailNow("blocked search never finished")
	}
}

func (s *ServiceSuite) TestResetDuringInFlightWriteDiscardsStaleConfirm() {
	s.findGuest()

	entered := make(chan struct{})
	release := make(chan struct{})

	s.writer.EXPECT().
		MarkCheckedIn(gomock.Any(), "gst-7").
		DoAndReturn(func(context.Context, string) (*guestModels.Guest, error) {
			close(entered)
			<-release
			return s.checkedInGuest(), nil
		})
	s.gallery.EXPECT().IssueAccessLink("gst-7", "evt-42").Return("https://g/x", nil)

	done := make(chan service.Attempt, 1)
	go func() {
		attempt, err := s.svc.Confirm(context.Background())
		s.NoError(err)
		done <- attempt
	}()

	<-entered
	// The attempt is Found, not Searching, while the write is in flight, so
	// reset is available and must not crash anything.
	s.Require().NoError(s.svc.Reset())
	s.Equal(service.StateIdle, s.svc.Current().State)

	close(release)
	select {
	case attempt := <-done:
		// The write landed in the store, but the station moved on; the stale
		// confirm result is discarded rather than clobbering the fresh idle.
		s.Equal(service.StateIdle, attempt.State)
	case <-time.After(time.Second):
		s.FailNow("blocked confirmation never finished")
	}
	s.Equal(service.StateIdle, s.svc.Current().State)

	s.Run("the landed write is observed idempotently on the next scan", func() {
		s.resolver.EXPECT().
			ResolveCredential(gomock.Any(), gomock.Any(), "evt-42").
			Return(s.checkedInGuest(), nil)
		s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(s.openEvent(), nil)

		attempt, err := s.svc.SubmitScan(context.Background(), "evt-42", "c290-aaaa-guest-1")
		s.Require().NoError(err)
		s.Equal(service.StateConfirmed, attempt.State)
		s.True(attempt.AlreadyCheckedIn)
	})
}
