package service

import (
	"log/slog"
	"strings"

	"github.com/tirgei/questioner/internal/apperror"
	"github.com/tirgei/questioner/internal/model"
	"github.com/tirgei/questioner/internal/store"
)

// MeetupInput is the payload accepted by Create.
type MeetupInput struct {
	Topic       string   `json:"topic"`
	Location    string   `json:"location"`
	HappeningOn string   `json:"happening_on"`
	Tags        []string `json:"tags"`
}

func (in MeetupInput) empty() bool {
	return in.Topic == "" && in.Location == "" && in.HappeningOn == "" && len(in.Tags) == 0
}

// MeetupService owns meetup records. Questions reference meetups through
// Exists, so the question service never touches the meetup store directly.
type MeetupService struct {
	meetups *store.Store[*model.Meetup]
	logger  *slog.Logger
}

// NewMeetupService creates a MeetupService backed by the given store.
func NewMeetupService(meetups *store.Store[*model.Meetup], logger *slog.Logger) *MeetupService {
	return &MeetupService{meetups: meetups, logger: logger}
}

// Create validates and persists a new meetup owned by creatorID.
// Topic, location, happening_on and tags are all required; there are no
// uniqueness constraints — two identical meetups are allowed.
func (s *MeetupService) Create(input MeetupInput, creatorID int) (*model.Meetup, error) {
	if input.empty() {
		return nil, apperror.Validation(msgNoData, nil)
	}

	fields := map[string][]string{}
	if strings.TrimSpace(input.Topic) == "" {
		fields["topic"] = append(fields["topic"], msgFieldRequired)
	}
	if strings.TrimSpace(input.Location) == "" {
		fields["location"] = append(fields["location"], msgFieldRequired)
	}
	if strings.TrimSpace(input.HappeningOn) == "" {
		fields["happening_on"] = append(fields["happening_on"], msgFieldRequired)
	}
	if len(input.Tags) == 0 {
		fields["tags"] = append(fields["tags"], msgFieldRequired)
	}
	if len(fields) > 0 {
		return nil, apperror.Validation(msgInvalidData, fields)
	}

	meetup := s.meetups.Save(&model.Meetup{
		Topic:       strings.TrimSpace(input.Topic),
		Location:    strings.TrimSpace(input.Location),
		HappeningOn: strings.TrimSpace(input.HappeningOn),
		Tags:        input.Tags,
		CreatedBy:   creatorID,
	})

	s.logger.Info("meetup created",
		slog.Int("meetupID", meetup.ID),
		slog.String("topic", meetup.Topic),
	)

	return meetup, nil
}

// ListAll returns every meetup in insertion order.
func (s *MeetupService) ListAll() []*model.Meetup {
	return s.meetups.All()
}

// FindByID returns the meetup with the given id.
func (s *MeetupService) FindByID(id int) (*model.Meetup, error) {
	meetup, err := s.meetups.FindByID(id)
	if err != nil {
		return nil, apperror.NotFound("Meetup not found")
	}
	return meetup, nil
}

// Exists reports whether a meetup with the given id exists. Used by the
// question service to enforce the meetup reference at posting time.
func (s *MeetupService) Exists(id int) bool {
	return s.meetups.ExistsID(id)
}
