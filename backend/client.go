// Package backend is the typed client for the upstream barbershop REST API,
// which owns every persistent record (shops, barbers, appointments,
// notifications). This service never writes anywhere else.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"trimly/models"
)

// Client talks JSON over HTTP to the upstream API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL, e.g. "http://host/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type tokenKey struct{}

// WithToken returns a context that forwards the caller's bearer token on
// every upstream request made with it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := ctx.Value(tokenKey{}).(string); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: upstream returned %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Ping checks upstream reachability.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

// GetShop fetches one barbershop profile.
func (c *Client) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	var shop models.Shop
	if err := c.doJSON(ctx, http.MethodGet, "/shops/"+url.PathEscape(shopID), nil, &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

// GetBarber fetches one barber profile, including their service menu.
func (c *Client) GetBarber(ctx context.Context, barberID string) (*models.Barber, error) {
	var barber models.Barber
	if err := c.doJSON(ctx, http.MethodGet, "/barbers/"+url.PathEscape(barberID), nil, &barber); err != nil {
		return nil, err
	}
	return &barber, nil
}

// GetBarberDaysOff returns the barber's weekly days off as weekday names.
func (c *Client) GetBarberDaysOff(ctx context.Context, barberID string) ([]string, error) {
	var out struct {
		DaysOff []string `json:"days_off"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/barbers/"+url.PathEscape(barberID)+"/days-off", nil, &out); err != nil {
		return nil, err
	}
	return out.DaysOff, nil
}

// GetBarberWorkingHours returns the barber's raw "open - close" string.
func (c *Client) GetBarberWorkingHours(ctx context.Context, barberID string) (string, error) {
	var out struct {
		WorkingHours string `json:"working_hours"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/barbers/"+url.PathEscape(barberID)+"/working-hours", nil, &out); err != nil {
		return "", err
	}
	return out.WorkingHours, nil
}

// GetBarberBookedTimes returns the starts of appointments already booked
// with the barber, as upstream stores them (UTC).
func (c *Client) GetBarberBookedTimes(ctx context.Context, barberID string) ([]time.Time, error) {
	var out struct {
		BookedTimes []time.Time `json:"booked_times"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/barbers/"+url.PathEscape(barberID)+"/booked-times", nil, &out); err != nil {
		return nil, err
	}
	return out.BookedTimes, nil
}

// CreateAppointment performs the single booking write for a draft.
func (c *Client) CreateAppointment(ctx context.Context, draft models.BookingDraft) (*models.Appointment, error) {
	var appt models.Appointment
	if err := c.doJSON(ctx, http.MethodPost, "/appointments", draft, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpdateAppointmentStatus moves an appointment to a new state.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, appointmentID, status string) (*models.Appointment, error) {
	body := map[string]string{"status": status}
	var appt models.Appointment
	path := "/appointments/" + url.PathEscape(appointmentID)
	if err := c.doJSON(ctx, http.MethodPatch, path, body, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListAppointments returns appointments for one party. role selects the
// upstream filter: "barber" lists the barber's calendar, anything else the
// client's own bookings.
func (c *Client) ListAppointments(ctx context.Context, userID, role string) ([]models.Appointment, error) {
	q := url.Values{}
	if role == "barber" {
		q.Set("barber_id", userID)
	} else {
		q.Set("client_id", userID)
	}
	var out struct {
		Appointments []models.Appointment `json:"appointments"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/appointments?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// ListNotifications fetches a user's notifications, newest first.
func (c *Client) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	var out struct {
		Notifications []models.Notification `json:"notifications"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/notifications?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Notifications, nil
}

// CreateNotification posts a notification record upstream. Used by the
// reminder worker; delivery to devices is upstream's concern.
func (c *Client) CreateNotification(ctx context.Context, n models.Notification) error {
	return c.doJSON(ctx, http.MethodPost, "/notifications", n, nil)
}
