package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Assistant panel (bot type) constants
const (
	BotGeneralHealth = "general-health"
	BotMentalHealth  = "mental-health"
	BotOrthopedic    = "orthopedic"
	BotFitness       = "fitness"
	BotPDFAnalyzer   = "pdf-analyzer"
)

// Subscription plan constants
const (
	PlanFree    = "Free Plan"
	PlanBasic   = "Basic Plan"
	PlanPremium = "Premium Plan"
)

// Payment status constants
const (
	PaymentCompleted = "completed"
)

// Appointment status constants
const (
	AppointmentScheduled = "scheduled"
	AppointmentCancelled = "cancelled"
)

// DefaultSpecialist is used when an appointment request names none
const DefaultSpecialist = "General Practitioner"

// Plan describes a subscription tier and its monthly price
type Plan struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Plans lists the tiers in display order
var Plans = []Plan{
	{Name: PlanFree, Price: 0},
	{Name: PlanBasic, Price: 9.99},
	{Name: PlanPremium, Price: 19.99},
}

// Request types

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SaveChatRequest struct {
	BotType  string          `json:"botType"`
	Title    string          `json:"title"`
	Messages json.RawMessage `json:"messages"`
}

type UpdateChatTitleRequest struct {
	Title string `json:"title"`
}

type UpdateChatMessagesRequest struct {
	Messages json.RawMessage `json:"messages"`
}

// CreateSubscriptionRequest mirrors the payment form. Card fields are
// decoded so the form can post them unchanged, but nothing reads them.
type CreateSubscriptionRequest struct {
	PlanType   string `json:"planType"`
	Amount     Amount `json:"amount"`
	CardName   string `json:"cardName,omitempty"`
	CardNumber string `json:"cardNumber,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
	CVV        string `json:"cvv,omitempty"`
}

type BookAppointmentRequest struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Specialist string `json:"specialist"`
	Reason     string `json:"reason"`
	Notes      string `json:"notes"`
}

// ErrInvalidAmount is returned when an amount is neither a number nor a numeric string
var ErrInvalidAmount = errors.New("invalid amount format")

// Amount accepts either a JSON number or a numeric string ("9.99")
type Amount struct {
	Value float64
	Valid bool
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	a.Value, a.Valid = 0, false

	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Leave Valid=false; the handler reports the bad value
		return nil
	}
	a.Value, a.Valid = v, true
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// Response types

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type RegisterResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
}

type LoginResponse struct {
	Message   string     `json:"message"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      PublicUser `json:"user"`
}

type SaveChatResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

type ChatSummary struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

type ListChatsResponse struct {
	Chats []ChatSummary `json:"chats"`
}

type Chat struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	BotType  string          `json:"botType"`
	Messages json.RawMessage `json:"messages"`
	Date     time.Time       `json:"date"`
}

type ChatTitle struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type UpdateChatTitleResponse struct {
	Success bool      `json:"success"`
	Chat    ChatTitle `json:"chat"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type Subscription struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	PlanType      string    `json:"planType"`
	Amount        float64   `json:"amount"`
	PaymentStatus string    `json:"paymentStatus"`
	StartDate     time.Time `json:"startDate"`
	RenewalDate   time.Time `json:"renewalDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateSubscriptionResponse struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	Subscription Subscription `json:"subscription"`
}

type MySubscriptionResponse struct {
	Subscription *Subscription `json:"subscription"`
}

// Admin response types

type AdminStats struct {
	TotalUsers       int     `json:"totalUsers"`
	ActiveSessions   int     `json:"activeSessions"`
	TotalChats       int     `json:"totalChats"`
	SubscriptionRate int     `json:"subscriptionRate"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

type AdminUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	JoinDate  string `json:"joinDate"`
	MemberFor string `json:"memberFor"`
	Status    string `json:"status"`
	Plan      string `json:"plan"`
}

type AdminUsersResponse struct {
	Users []AdminUser `json:"users"`
}

type ActivityEntry struct {
	ID     string `json:"id"`
	Event  string `json:"event"`
	UserID string `json:"userId"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Ago    string `json:"ago"`
	Status string `json:"status"`
}

type AdminActivityResponse struct {
	Activity []ActivityEntry `json:"activity"`
}

type PlanUsage struct {
	Name  string  `json:"name"`
	Users int     `json:"users"`
	Price float64 `json:"price"`
}

type RecentSubscription struct {
	User        string  `json:"user"`
	Plan        string  `json:"plan"`
	StartDate   string  `json:"startDate"`
	RenewalDate string  `json:"renewalDate"`
	Amount      float64 `json:"amount"`
}

type AdminSubscriptionsResponse struct {
	Plans               []PlanUsage          `json:"plans"`
	RecentSubscriptions []RecentSubscription `json:"recentSubscriptions"`
}

// Appointment types

type Appointment struct {
	ID         string    `json:"id"`
	Specialist string    `json:"specialist"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Reason     string    `json:"reason"`
	Notes      *string   `json:"notes,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type BookAppointmentResponse struct {
	Appointment Appointment `json:"appointment"`
}

type ListAppointmentsResponse struct {
	Appointments []Appointment `json:"appointments"`
}

type AvailableSlotsResponse struct {
	Date       string   `json:"date"`
	Specialist string   `json:"specialist"`
	Slots      []string `json:"slots"`
}

// Symptom analysis types

type AnalyzeSymptomsRequest struct {
	Text string `json:"text"`
}

type SymptomMatch struct {
	Condition       string   `json:"condition"`
	Specialist      string   `json:"specialist"`
	Urgency         string   `json:"urgency"`
	MatchedSymptoms []string `json:"matchedSymptoms"`
	Score           int      `json:"score"`
	Description     string   `json:"description"`
	Treatment       string   `json:"treatment"`
	WhenToSeeDoctor string   `json:"whenToSeeDoctor"`
}

// SymptomAnalysis is the analyzer's verdict. Specialist is always set so the
// client can go straight to booking.
type SymptomAnalysis struct {
	FoundMatches bool           `json:"foundMatches"`
	Matches      []SymptomMatch `json:"matches"`
	Specialist   string         `json:"specialist"`
	Urgency      string         `json:"urgency,omitempty"`
	Advice       string         `json:"advice"`
}

type ConditionsResponse struct {
	Conditions []Condition `json:"conditions"`
}
