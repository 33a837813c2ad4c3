package models

import "time"

// User is a guest account created on first signup.
type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	FirstName     string    `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName      string    `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Type          string    `json:"type" bson:"type"` // guest
	Verified      bool      `json:"verified" bson:"verified"`
	Password      string    `json:"password,omitempty" bson:"password"`
	Role          []string  `json:"role" bson:"role"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"-" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// Host is upserted by uid every time a user starts or resumes a listing wizard.
type Host struct {
	UID         string    `json:"uid" bson:"uid"`
	Email       string    `json:"email" bson:"email"`
	FirstName   string    `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty" bson:"lastName,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	DisplayName string    `json:"displayName,omitempty" bson:"displayName,omitempty"`
	IsVerified  bool      `json:"isVerified" bson:"isVerified"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// GuestCounts breaks a home listing's capacity down by age group.
type GuestCounts struct {
	Adults   int `json:"adults" bson:"adults"`
	Children int `json:"children" bson:"children"`
	Infants  int `json:"infants" bson:"infants"`
}

type AgeRestriction struct {
	Min int `json:"min" bson:"min"`
	Max int `json:"max" bson:"max"`
}

type ScheduleEntry struct {
	Date string `json:"date" bson:"date"` // YYYY-MM-DD
	Time string `json:"time" bson:"time"` // HH:MM
}

// Listing is polymorphic by Category (Homes, Experiences, Services); only the
// matching field group is populated.
type Listing struct {
	ID          string   `json:"id" bson:"id"`
	UID         string   `json:"uid" bson:"uid"` // owning host
	Category    string   `json:"category" bson:"category"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64  `json:"price" bson:"price"`
	Status      string   `json:"status" bson:"status"` // draft, published
	Photos      []string `json:"photos,omitempty" bson:"photos,omitempty"`
	Location    string   `json:"location,omitempty" bson:"location,omitempty"`

	// Homes
	Bedrooms  int          `json:"bedrooms,omitempty" bson:"bedrooms,omitempty"`
	Beds      int          `json:"beds,omitempty" bson:"beds,omitempty"`
	Bathrooms int          `json:"bathrooms,omitempty" bson:"bathrooms,omitempty"`
	Guests    *GuestCounts `json:"guests,omitempty" bson:"guests,omitempty"`

	// Experiences
	MaxParticipants int             `json:"maxParticipants,omitempty" bson:"maxParticipants,omitempty"`
	AgeRestriction  *AgeRestriction `json:"ageRestriction,omitempty" bson:"ageRestriction,omitempty"`
	Schedule        []ScheduleEntry `json:"schedule,omitempty" bson:"schedule,omitempty"`
	Languages       []string        `json:"languages,omitempty" bson:"languages,omitempty"`

	// Services
	PricingType        string `json:"pricingType,omitempty" bson:"pricingType,omitempty"`
	Qualifications     string `json:"qualifications,omitempty" bson:"qualifications,omitempty"`
	ClientRequirements string `json:"clientRequirements,omitempty" bson:"clientRequirements,omitempty"`

	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	SavedAt     *time.Time `json:"savedAt,omitempty" bson:"savedAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
}

type Booking struct {
	ID            string    `json:"id" bson:"id"`
	ListingID     string    `json:"listingId" bson:"listingId"`
	GuestName     string    `json:"guestName" bson:"guestName"`
	GuestEmail    string    `json:"guestEmail" bson:"guestEmail"`
	CheckIn       time.Time `json:"checkIn" bson:"checkIn"`
	CheckOut      time.Time `json:"checkOut" bson:"checkOut"`
	Status        string    `json:"status" bson:"status"`               // pending, confirmed, cancelled
	PaymentStatus string    `json:"paymentStatus" bson:"paymentStatus"` // pending, paid, cancelled, refunded
	TotalPrice    float64   `json:"totalPrice" bson:"totalPrice"`
	Guests        int       `json:"guests" bson:"guests"`
	Nights        int       `json:"nights" bson:"nights"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type Review struct {
	ID        string    `json:"id" bson:"id"`
	ListingID string    `json:"listingId" bson:"listingId"`
	UserID    string    `json:"userId,omitempty" bson:"userId,omitempty"`
	Rating    float64   `json:"rating" bson:"rating"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// WalletTxn is a service-fee ledger entry scoped to a wallet id.
type WalletTxn struct {
	ID        string    `json:"id" bson:"id"`
	WalletID  string    `json:"walletId" bson:"walletId"`
	Amount    float64   `json:"amount" bson:"amount"`
	Type      string    `json:"type" bson:"type"` // fee, payout, refund
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

type Message struct {
	ID         string    `json:"id" bson:"id"`
	SenderID   string    `json:"senderId" bson:"senderId"`
	ReceiverID string    `json:"receiverId" bson:"receiverId"`
	Message    string    `json:"message" bson:"message"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}
