package calendar

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/unidesk/consult-scheduler/internal/models"
)

const calendarScope = gcal.CalendarScope

// TokenSaver persists a refreshed access token back to the professor's
// record so the next call does not refresh again.
type TokenSaver interface {
	UpdateGoogleToken(ctx context.Context, userID uint, accessToken string, expiry time.Time) error
}

type GoogleFactory struct {
	clientID     string
	clientSecret string
	calendarID   string
	tokens       TokenSaver
}

func NewGoogleFactory(clientID, clientSecret, calendarID string, tokens TokenSaver) *GoogleFactory {
	return &GoogleFactory{
		clientID:     clientID,
		clientSecret: clientSecret,
		calendarID:   calendarID,
		tokens:       tokens,
	}
}

// For builds a calendar API bound to the professor's stored OAuth
// credentials, refreshing the access token once if it has expired.
func (f *GoogleFactory) For(ctx context.Context, professor *models.User) (API, error) {
	if !professor.HasGoogleCredentials() {
		return nil, errors.New("professor has no google credentials")
	}

	conf := &oauth2.Config{
		ClientID:     f.clientID,
		ClientSecret: f.clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendarScope},
	}

	token := &oauth2.Token{
		AccessToken:  professor.GoogleAccessToken,
		RefreshToken: professor.GoogleRefreshToken,
	}
	if professor.GoogleTokenExpiry != nil {
		token.Expiry = *professor.GoogleTokenExpiry
	}

	source := conf.TokenSource(ctx, token)

	// Forces a refresh when the stored token is expired.
	fresh, err := source.Token()
	if err != nil {
		return nil, err
	}

	if fresh.AccessToken != professor.GoogleAccessToken {
		if err := f.tokens.UpdateGoogleToken(ctx, professor.ID, fresh.AccessToken, fresh.Expiry); err != nil {
			return nil, err
		}
	}

	svc, err := gcal.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, err
	}

	return &googleAPI{svc: svc, calendarID: f.calendarID}, nil
}

type googleAPI struct {
	svc        *gcal.Service
	calendarID string
}

func (g *googleAPI) Insert(ctx context.Context, ev *Event) (string, error) {
	created, err := g.svc.Events.
		Insert(g.calendarID, toGoogleEvent(ev)).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func (g *googleAPI) Get(ctx context.Context, eventID string) (*Event, error) {
	ev, err := g.svc.Events.
		Get(g.calendarID, eventID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, translateError(err)
	}
	return fromGoogleEvent(ev), nil
}

func (g *googleAPI) Update(ctx context.Context, eventID string, ev *Event) error {
	remote, err := g.svc.Events.
		Get(g.calendarID, eventID).
		Context(ctx).
		Do()
	if err != nil {
		return translateError(err)
	}

	updated := toGoogleEvent(ev)
	updated.Id = remote.Id

	_, err = g.svc.Events.
		Update(g.calendarID, eventID, updated).
		SendUpdates("all").
		Context(ctx).
		Do()
	return translateError(err)
}

func (g *googleAPI) Delete(ctx context.Context, eventID string) error {
	err := g.svc.Events.
		Delete(g.calendarID, eventID).
		SendUpdates("all").
		Context(ctx).
		Do()
	return translateError(err)
}

func toGoogleEvent(ev *Event) *gcal.Event {
	out := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	for _, email := range ev.Attendees {
		out.Attendees = append(out.Attendees, &gcal.EventAttendee{Email: email})
	}

	return out
}

func fromGoogleEvent(ev *gcal.Event) *Event {
	out := &Event{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Status:      ev.Status,
	}

	if ev.Start != nil {
		out.Start, _ = time.Parse(time.RFC3339, ev.Start.DateTime)
	}
	if ev.End != nil {
		out.End, _ = time.Parse(time.RFC3339, ev.End.DateTime)
	}
	for _, a := range ev.Attendees {
		out.Attendees = append(out.Attendees, a.Email)
	}

	return out
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == 404 || gerr.Code == 410) {
		return ErrEventNotFound
	}
	return err
}
