// Package tracking derives the shopper-facing view of an order's progress:
// the four-step timeline and the estimated delivery date.
package tracking

import (
	"time"

	"storefront-service/internal/models"
)

const (
	IconCheck   = "Check"
	IconPackage = "Package"
	IconTruck   = "Truck"
	IconHome    = "Home"
	IconClock   = "Clock"
	IconX       = "X"
)

// DeliveredLabel replaces the estimate once an order has arrived.
const DeliveredLabel = "Delivered"

// DateLayout renders estimates as e.g. "Jan 2, 2006".
const DateLayout = "Jan 2, 2006"

// Progression is the order a shipment moves through. Cancelled orders
// fall outside it.
var Progression = []models.OrderStatus{
	models.OrderStatusConfirmed,
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
}

type StatusInfo struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func Describe(status models.OrderStatus) StatusInfo {
	switch status {
	case models.OrderStatusConfirmed:
		return StatusInfo{IconCheck, "Order Confirmed", "We've received your order"}
	case models.OrderStatusProcessing:
		return StatusInfo{IconPackage, "Processing", "We're preparing your items"}
	case models.OrderStatusShipped:
		return StatusInfo{IconTruck, "Shipped", "Your order is on the way"}
	case models.OrderStatusDelivered:
		return StatusInfo{IconHome, "Delivered", "Package delivered"}
	}
	return StatusInfo{IconClock, "Pending", "Awaiting update"}
}

// StatusIcon is the badge icon shown next to an order in the history list.
func StatusIcon(status models.OrderStatus) string {
	if status == models.OrderStatusCancelled {
		return IconX
	}
	return Describe(status).Icon
}

func index(status models.OrderStatus) int {
	for i, s := range Progression {
		if s == status {
			return i
		}
	}
	return -1
}

// Step returns the 1-based position of status in Progression, or 0.
func Step(status models.OrderStatus) int {
	return index(status) + 1
}

func IsStepComplete(step, current models.OrderStatus) bool {
	return index(step) <= index(current)
}

func IsStepActive(step, current models.OrderStatus) bool {
	return step == current
}

// EstimatedDelivery adds a status-dependent number of calendar days to
// createdAt, in createdAt's location.
func EstimatedDelivery(createdAt time.Time, status models.OrderStatus) string {
	days := 7
	switch status {
	case models.OrderStatusProcessing:
		days = 5
	case models.OrderStatusShipped:
		days = 2
	case models.OrderStatusDelivered:
		return DeliveredLabel
	}
	return createdAt.AddDate(0, 0, days).Format(DateLayout)
}

type TimelineStep struct {
	Status      models.OrderStatus `json:"status"`
	Icon        string             `json:"icon"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Complete    bool               `json:"complete"`
	Active      bool               `json:"active"`
	Timestamp   *time.Time         `json:"timestamp,omitempty"`
}

// Timeline renders the progression for order. Only the active step carries
// a timestamp, the order's creation time. A cancelled order has no
// complete or active step.
func Timeline(order models.Order) []TimelineStep {
	steps := make([]TimelineStep, 0, len(Progression))
	for _, s := range Progression {
		info := Describe(s)
		step := TimelineStep{
			Status:      s,
			Icon:        info.Icon,
			Title:       info.Title,
			Description: info.Description,
			Complete:    IsStepComplete(s, order.Status) && index(order.Status) >= 0,
			Active:      IsStepActive(s, order.Status),
		}
		if step.Active {
			ts := order.CreatedAt
			step.Timestamp = &ts
		}
		steps = append(steps, step)
	}
	return steps
}

type View struct {
	Order             models.Order   `json:"order"`
	Status            StatusInfo     `json:"status"`
	EstimatedDelivery string         `json:"estimatedDelivery"`
	CurrentStep       int            `json:"currentStep"`
	Timeline          []TimelineStep `json:"timeline"`
}

func Track(order models.Order) View {
	return View{
		Order:             order,
		Status:            Describe(order.Status),
		EstimatedDelivery: EstimatedDelivery(order.CreatedAt, order.Status),
		CurrentStep:       Step(order.Status),
		Timeline:          Timeline(order),
	}
}
