package service_test

import (
	"context"
	"errors"
	"time"

	"go.uber.org/mock/gomock"

	"doorlist/internal/checkin/service"
	guestModels "doorlist/internal/guest/models"
	"doorlist/internal/notify"
	dErrors "doorlist/pkg/domain-errors"
)

// findGuest walks the suite's orchestrator to Found via a name search.
func (s *ServiceSuite) findGuest() {
	s.resolver.EXPECT().
		ResolveName(gomock.Any(), "evt-42", "ana").
		Return([]*guestModels.Guest{s.guest()}, nil)
	s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(s.openEvent(), nil)

	attempt, err := s.svc.SubmitName(context.Background(), "evt-42", "ana")
	s.Require().NoError(err)
	s.Require().Equal(service.StateFound, attempt.State)
}

func (s *ServiceSuite) TestConfirmRecordsCheckIn() {
	s.findGuest()

	s.writer.EXPECT().MarkCheckedIn(gomock.Any(), "gst-7").Return(s.checkedInGuest(), nil)
	s.gallery.EXPECT().
		IssueAccessLink("gst-7", "evt-42").
		Return("https://gallery.example.com/evt-42?token=abc", nil)

	attempt, err := s.svc.Confirm(context.Background())
	s.Require().NoError(err)
	s.Equal(service.StateConfirmed, attempt.State)
	s.False(attempt.AlreadyCheckedIn)
	s.NotNil(attempt.Guest.CheckedInAt)
	s.Equal([]string{notify.SubjectCheckinConfirmed}, s.publisher.subjects)
	s.Equal([]string{"ana@example.com"}, s.mail.invites)
}

func (s *ServiceSuite) TestGateClosesBetweenFoundAndConfirm() {
	s.findGuest()

	// The event ends while the guest is standing at the desk.
	s.now = s.now.Add(8 * time.Hour)

	attempt, err := s.svc.Confirm(context.Background())
	s.Require().NoError(err)
	s.Equal(service.StateFound, attempt.State)
	s.NotEmpty(attempt.DeniedReason)
	s.Zero(s.publisher.count())
}

func (s *ServiceSuite) TestConfirmWriteFailureKeepsAttemptRetryable() {
	s.findGuest()

	s.writer.EXPECT().
		MarkCheckedIn(gomock.Any(), "gst-7").
		Return(nil, errors.New("conn reset"))

	attempt, err := s.svc.Confirm(context.Background())
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeUnavailable))
	s.Equal(service.StateFound, attempt.State)
	s.Equal("gst-7", attempt.Guest.ID)
	s.Zero(s.publisher.count())

	s.Run("retry succeeds", func() {
		s.writer.EXPECT().MarkCheckedIn(gomock.Any(), "gst-7").Return(s.checkedInGuest(), nil)
		s.gallery.EXPECT().IssueAccessLink("gst-7", "evt-42").Return("https://g/x", nil)

		attempt, err := s.svc.Confirm(context.Background())
		s.Require().NoError(err)
		s.Equal(service.StateConfirmed, attempt.State)
		s.Equal(1, s.publisher.count())
	})
}

func (s *ServiceSuite) TestConfirmWithoutFoundGuest() {
	_, err := s.svc.Confirm(context.Background())
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeInvalidState))
}

func (s *ServiceSuite) TestResetClearsAttempt() {
	s.findGuest()

	s.Require().NoError(s.svc.Reset())
	s.Equal(service.StateIdle, s.svc.Current().State)

	_, err := s.svc.Confirm(context.Background())
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeInvalidState))
}

func (s *ServiceSuite) TestSideEffectFailuresDoNotFailConfirmation() {
	s.findGuest()

	s.publisher.err = errors.New("nats down")
	s.mail.err = errors.New("smtp down")
	s.writer.EXPECT().MarkCheckedIn(gomock.Any(), "gst-7").Return(s.checkedInGuest(), nil)
	s.gallery.EXPECT().IssueAccessLink("gst-7", "evt-42").Return("https://g/x", nil)

	attempt, err := s.svc.Confirm(context.Background())
	s.Require().NoError(err)
	s.Equal(service.StateConfirmed, attempt.State)
}

func (s *ServiceSuite) TestGalleryFailureStillConfirms() {
	s.findGuest()

	s.writer.EXPECT().MarkCheckedIn(gomock.Any(), "gst-7").Return(s.checkedInGuest(), nil)
	s.gallery.EXPECT().
		IssueAccessLink("gst-7", "evt-42").
		Return("", errors.New("signing key rotated"))

	attempt, err := s.svc.Confirm(context.Background())
	s.Require().NoError(err)
	s.Equal(service.StateConfirmed, attempt.State)
	s.Empty(attempt.GalleryURL)
	// No link, no invite; the confirmation itself still counts.
	s.Zero(s.mail.count())
	s.Equal(1, s.publisher.count())
}
