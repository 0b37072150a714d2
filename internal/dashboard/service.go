package dashboard

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/vegruit/storefront/internal/auth"
	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/order"
	"github.com/vegruit/storefront/internal/session"
	"github.com/vegruit/storefront/internal/validate"
)

const recentOrders = 5

var ErrNotConfirmed = errors.New("please confirm account deletion twice")

// Overview is the dashboard landing view.
type Overview struct {
	Role           session.UserType       `json:"role"`
	Profile        *session.Profile       `json:"profile"`
	Stats          backend.DashboardStats `json:"stats"`
	RecentOrders   []order.View           `json:"recentOrders"`
	SettingsFields []string               `json:"settingsFields"`
}

type Service struct {
	gateway Gateway
	hub     *Hub
}

func NewService(gw Gateway, hub *Hub) *Service {
	return &Service{gateway: gw, hub: hub}
}

func contextFor(m *session.Manager) (Context, *backend.Error) {
	dc, ok := For(m.CurrentUserType())
	if !ok {
		return Context{}, &backend.Error{Kind: backend.KindValidation, Status: http.StatusUnauthorized, Message: "please log in to continue"}
	}
	return dc, nil
}

// Overview fetches stats and recent orders, and starts the live refresher.
func (s *Service) Overview(ctx context.Context, m *session.Manager) backend.Result[Overview] {
	dc, e := contextFor(m)
	if e != nil {
		return backend.Fail[Overview](e)
	}
	token := m.CurrentToken()

	stats := dc.Stats(ctx, s.gateway, token)
	if !stats.OK() {
		return backend.Fail[Overview](stats.Err)
	}
	orders := dc.Orders(ctx, s.gateway, token)
	if !orders.OK() {
		return backend.Fail[Overview](orders.Err)
	}

	recent := make([]order.View, 0, recentOrders)
	for i, o := range orders.Data {
		if i == recentOrders {
			break
		}
		recent = append(recent, order.NewView(o, dc.Role))
	}

	s.hub.Watch(m.Namespace(), token, dc)
	s.hub.Seed(m.Namespace(), token, stats.Data)

	return backend.Ok(Overview{
		Role:           dc.Role,
		Profile:        m.Current().Profile,
		Stats:          stats.Data,
		RecentOrders:   recent,
		SettingsFields: dc.SettingsFields,
	}, "")
}

// Live returns the refresher's latest snapshot for the current session,
// starting one if needed.
func (s *Service) Live(ctx context.Context, m *session.Manager) backend.Result[Snapshot] {
	dc, e := contextFor(m)
	if e != nil {
		return backend.Fail[Snapshot](e)
	}
	token := m.CurrentToken()
	if snap, ok := s.hub.Snapshot(m.Namespace(), token); ok {
		return backend.Ok(snap, "")
	}
	stats := dc.Stats(ctx, s.gateway, token)
	if !stats.OK() {
		return backend.Fail[Snapshot](stats.Err)
	}
	s.hub.Watch(m.Namespace(), token, dc)
	s.hub.Seed(m.Namespace(), token, stats.Data)
	if snap, ok := s.hub.Snapshot(m.Namespace(), token); ok {
		return backend.Ok(snap, "")
	}
	return backend.Ok(Snapshot{Stats: stats.Data, UpdatedAt: time.Now()}, "")
}

// SettingsInput holds the editable profile fields; nil means unchanged.
type SettingsInput struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	FarmName     *string `json:"farmName"`
	FarmLocation *string `json:"farmLocation"`
}

func (in SettingsInput) update(dc Context) (backend.ProfileUpdate, error) {
	var up backend.ProfileUpdate
	set := func(field string, v *string, dst **string) error {
		if v == nil {
			return nil
		}
		if !dc.Allows(field) {
			return errors.New(field + " cannot be changed here")
		}
		trimmed := strings.TrimSpace(*v)
		*dst = &trimmed
		return nil
	}
	if err := validate.First(
		set("name", in.Name, &up.Name),
		set("phone", in.Phone, &up.Phone),
		set("address", in.Address, &up.Address),
		set("city", in.City, &up.City),
		set("farmName", in.FarmName, &up.FarmName),
		set("farmLocation", in.FarmLocation, &up.FarmLocation),
	); err != nil {
		return up, err
	}
	if up.Name != nil {
		if err := validate.Required(validate.Field{Name: "name", Value: *up.Name}); err != nil {
			return up, err
		}
	}
	if up.Phone != nil {
		if err := validate.Phone(*up.Phone); err != nil {
			return up, err
		}
	}
	if dc.Role == session.Seller {
		if up.FarmName != nil && *up.FarmName == "" {
			return up, errors.New("farm name is required")
		}
	}
	return up, nil
}

// UpdateSettings saves the profile and re-establishes the session with the
// profile the backend returns.
func (s *Service) UpdateSettings(ctx context.Context, m *session.Manager, in SettingsInput) backend.Result[session.Profile] {
	dc, e := contextFor(m)
	if e != nil {
		return backend.Fail[session.Profile](e)
	}
	up, err := in.update(dc)
	if err != nil {
		return backend.Invalid[session.Profile](err.Error())
	}
	res := s.gateway.UpdateProfile(ctx, m.CurrentToken(), up)
	if !res.OK() {
		return backend.Fail[session.Profile](res.Err)
	}
	profile := auth.ProfileFromUser(res.Data)
	if profile.ID == "" {
		if cur := m.Current().Profile; cur != nil {
			profile.ID = cur.ID
		}
	}
	m.Establish(ctx, profile, m.CurrentToken(), dc.Role)
	msg := res.Message
	if msg == "" {
		msg = "Settings saved"
	}
	return backend.Ok(*m.Current().Profile, msg)
}

// DeleteInput carries the two confirmations.
type DeleteInput struct {
	Confirm      bool `json:"confirm"`
	ConfirmAgain bool `json:"confirmAgain"`
}

// DeleteAccount removes the account at the backend and then clears the session.
func (s *Service) DeleteAccount(ctx context.Context, m *session.Manager, in DeleteInput) backend.Result[struct{}] {
	if !in.Confirm || !in.ConfirmAgain {
		return backend.Invalid[struct{}](ErrNotConfirmed.Error())
	}
	res := s.gateway.DeleteAccount(ctx, m.CurrentToken())
	if !res.OK() {
		return res
	}
	m.Clear(ctx)
	if res.Message == "" {
		res.Message = "Your account has been deleted"
	}
	return res
}
