package service_test

import (
	"context"
	"errors"
	"time"

	"go.uber.org/mock/gomock"

	"doorlist/internal/checkin/service"
	"doorlist/internal/credential"
	"doorlist/internal/notify"
	dErrors "doorlist/pkg/domain-errors"
)

func (s *ServiceSuite) TestScanToConfirmFastPath() {
	raw, err := credential.Encode("gst-7", "evt-42")
	s.Require().NoError(err)

	guest := s.guest()
	checkedIn := s.checkedInGuest()

	s.resolver.EXPECT().
		ResolveCredential(gomock.Any(), gomock.Any(), "evt-42").
		Return(guest, nil)
	s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(s.openEvent(), nil)
	s.writer.EXPECT().MarkCheckedIn(gomock.Any(), "gst-7").Return(checkedIn, nil)
	s.gallery.EXPECT().
		IssueAccessLink("gst-7", "evt-42").
		Return("https://gallery.example.com/evt-42?token=abc", nil)

	attempt, err := s.svc.SubmitScan(context.Background(), "evt-42", raw)
	s.Require().NoError(err)
	s.Equal(service.StateConfirmed, attempt.State)
	s.False(attempt.AlreadyCheckedIn)
	s.Equal("12", attempt.Guest.Table)
	s.Equal("https://gallery.example.com/evt-42?token=abc", attempt.GalleryURL)
	s.Equal([]string{notify.SubjectCheckinConfirmed}, s.publisher.subjects)
	s.Equal(1, s.mail.count())
}

func (s *ServiceSuite) TestScanAlreadyCheckedInShortCircuits() {
	raw, err := credential.Encode("gst-7", "evt-42")
	s.Require().NoError(err)

	s.resolver.EXPECT().
		ResolveCredential(gomock.Any(), gomock.Any(), "evt-42").
		Return(s.checkedInGuest(), nil)
	s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(s.openEvent(), nil)
	// No write, no link, no notifications: the rescan must be side-effect free.

	attempt, err := s.svc.SubmitScan(context.Background(), "evt-42", raw)
	s.Require().NoError(err)
	s.Equal(service.StateConfirmed, attempt.State)
	s.True(attempt.AlreadyCheckedIn)
	s.Equal("12", attempt.Guest.Table)
	s.Zero(s.publisher.count())
	s.Zero(s.mail.count())
}

func (s *ServiceSuite) TestScanUnknownLegacyCodeIsNotFound() {
	s.resolver.EXPECT().
		ResolveCredential(gomock.Any(), gomock.Any(), "evt-42").
		Return(nil, dErrors.New(dErrors.CodeNotFound, "no guest matches this code"))

	attempt, err := s.svc.SubmitScan(context.Background(), "evt-42", "c290-aaaa-guest-9")
	s.Require().NoError(err)
	s.Equal(service.StateNotFound, attempt.State)
	s.Nil(attempt.Guest)
}

func (s *ServiceSuite) TestScanGarbageIsRejectedWithoutAnAttempt() {
	attempt, err := s.svc.SubmitScan(context.Background(), "evt-42", "%%% not a code %%%")
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	s.Equal(service.StateIdle, attempt.State)
}

func (s *ServiceSuite) TestScanEventLinkRoutes() {
	attempt, err := s.svc.SubmitScan(context.Background(), "", "https://app.example.com/checkin/evt-42")
	s.Require().NoError(err)
	s.Equal(service.StateIdle, attempt.State)
	s.Equal("evt-42", attempt.RoutedEventID)
	s.Nil(attempt.Guest)
}

func (s *ServiceSuite) TestScanDeniedBeforeDoorsOpen() {
	raw, err := credential.Encode("gst-7", "evt-42")
	s.Require().NoError(err)

	early := s.openEvent()
	early.StartsAt = s.now.Add(3 * time.Hour) // doors open in one hour

	s.resolver.EXPECT().
		ResolveCredential(gomock.Any(), gomock.Any(), "evt-42").
		Return(s.guest(), nil)
	s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(early, nil)

	attempt, err := s.svc.SubmitScan(context.Background(), "evt-42", raw)
	s.Require().NoError(err)
	s.Equal(service.StateFound, attempt.State)
	s.NotEmpty(attempt.DeniedReason)
	s.Zero(s.publisher.count())
}

func (s *ServiceSuite) TestScanStoreOutageSurfacesRetryable() {
	raw, err := credential.Encode("gst-7", "evt-42")
	s.Require().NoError(err)

	s.resolver.EXPECT().
		ResolveCredential(gomock.Any(), gomock.Any(), "evt-42").
		Return(nil, dErrors.Wrap(dErrors.CodeUnavailable, "guest directory lookup failed", errors.New("conn refused")))

	attempt, err := s.svc.SubmitScan(context.Background(), "evt-42", raw)
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeUnavailable))
	s.Equal(service.StateIdle, attempt.State)
}

func (s *ServiceSuite) TestLegacyScanWithoutContextDiscoversEvent() {
	guest := s.guest()
	checkedIn := s.checkedInGuest()

	s.resolver.EXPECT().
		ResolveCredential(gomock.Any(), gomock.Any(), "").
		Return(guest, nil)
	s.events.EXPECT().FindByID(gomock.Any(), "evt-42").Return(s.openEvent(), nil)
	s.writer.EXPECT().MarkCheckedIn(gomock.Any(), "gst-7").Return(checkedIn, nil)
	s.gallery.EXPECT().IssueAccessLink("gst-7", "evt-42").Return("https://g/x", nil)

	attempt, err := s.svc.SubmitScan(context.Background(), "", "c290-aaaa-guest-1")
	s.Require().NoError(err)
	s.Equal(service.StateConfirmed, attempt.State)
	s.Equal("evt-42", attempt.Event.ID)
}
