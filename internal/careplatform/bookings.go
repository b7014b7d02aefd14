package careplatform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"carepro-gateway/internal/models"
)

// ListBookings fetches this carepro's bookings, optionally filtered by status
func (c *Client) ListBookings(ctx context.Context, status string) ([]models.RawBooking, error) {
	var query url.Values
	if status != "" {
		query = url.Values{}
		query.Set("status", status)
	}

	body, err := c.get(ctx, "/bookings", query)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	// decoded per item so one broken record only drops itself
	bookings := make([]models.RawBooking, 0, len(items))
	for _, item := range items {
		var booking models.RawBooking
		if err := json.Unmarshal(item, &booking); err != nil {
			continue
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// GetBooking fetches a single booking with its embedded timesheet if any
func (c *Client) GetBooking(ctx context.Context, id string) (models.RawBooking, error) {
	body, err := c.get(ctx, "/bookings/"+id, nil)
	if err != nil {
		return models.RawBooking{}, err
	}
	return decodeBooking(body)
}

// StartBooking requests the SCHEDULED -> IN_PROGRESS transition. The platform
// decides whether the transition happens; the returned booking carries the
// authoritative status.
func (c *Client) StartBooking(ctx context.Context, id string) (models.RawBooking, error) {
	body, err := c.put(ctx, "/bookings/"+id+"/start", nil)
	if err != nil {
		return models.RawBooking{}, err
	}
	return decodeBooking(body)
}

// CompleteBooking requests the IN_PROGRESS -> COMPLETED transition
func (c *Client) CompleteBooking(ctx context.Context, id string) (models.RawBooking, error) {
	body, err := c.put(ctx, "/bookings/"+id+"/complete", nil)
	if err != nil {
		return models.RawBooking{}, err
	}
	return decodeBooking(body)
}

// CancelBooking requests cancellation with an optional reason
func (c *Client) CancelBooking(ctx context.Context, id, reason string) (models.RawBooking, error) {
	payload := map[string]string{}
	if reason != "" {
		payload["reason"] = reason
	}
	body, err := c.put(ctx, "/bookings/"+id+"/cancel", payload)
	if err != nil {
		return models.RawBooking{}, err
	}
	return decodeBooking(body)
}

// CheckIn records the carepro's arrival at the booking site
func (c *Client) CheckIn(ctx context.Context, bookingID string, lat, lng float64) (models.RawTimesheet, error) {
	payload := map[string]float64{"lat": lat, "lng": lng}
	body, err := c.post(ctx, "/bookings/"+bookingID+"/timesheet/checkin", payload)
	if err != nil {
		return models.RawTimesheet{}, err
	}
	return decodeTimesheet(body)
}

// CheckOut records the carepro leaving the booking site
func (c *Client) CheckOut(ctx context.Context, bookingID string, lat, lng float64, note string) (models.RawTimesheet, error) {
	payload := map[string]interface{}{"lat": lat, "lng": lng}
	if note != "" {
		payload["note"] = note
	}
	body, err := c.post(ctx, "/bookings/"+bookingID+"/timesheet/checkout", payload)
	if err != nil {
		return models.RawTimesheet{}, err
	}
	return decodeTimesheet(body)
}

// GetTimesheet fetches the timesheet attached to a booking
func (c *Client) GetTimesheet(ctx context.Context, bookingID string) (models.RawTimesheet, error) {
	body, err := c.get(ctx, "/bookings/"+bookingID+"/timesheet", nil)
	if err != nil {
		return models.RawTimesheet{}, err
	}
	return decodeTimesheet(body)
}

func decodeBooking(body []byte) (models.RawBooking, error) {
	var booking models.RawBooking
	if err := json.Unmarshal(body, &booking); err != nil {
		return models.RawBooking{}, fmt.Errorf("failed to decode booking: %w", err)
	}
	return booking, nil
}

func decodeTimesheet(body []byte) (models.RawTimesheet, error) {
	var ts models.RawTimesheet
	if err := json.Unmarshal(body, &ts); err != nil {
		return models.RawTimesheet{}, fmt.Errorf("failed to decode timesheet: %w", err)
	}
	return ts, nil
}
