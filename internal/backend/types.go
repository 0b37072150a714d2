package backend

import "time"

// User is the profile record the backend returns at login and registration.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	FarmName     string `json:"farmName,omitempty"`
	FarmLocation string `json:"farmLocation,omitempty"`
	UserType     string `json:"userType,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType,omitempty"`
}

type Registration struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	FarmName     string `json:"farmName,omitempty"`
	FarmLocation string `json:"farmLocation,omitempty"`
}

// AuthResponse mirrors {success, user, userType, token, message}.
type AuthResponse struct {
	Success  bool   `json:"success"`
	User     User   `json:"user"`
	UserType string `json:"userType"`
	Token    string `json:"token"`
	Message  string `json:"message"`
}

type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
	SellerID  string  `json:"sellerId,omitempty"`
}

type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalValue float64    `json:"totalValue"`
}

type cartData struct {
	Cart Cart `json:"cart"`
}

type Party struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	FarmName string `json:"farmName,omitempty"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// Order is owned by the backend; totals are trusted as delivered.
type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber,omitempty"`
	Status          string      `json:"status"`
	OrderDate       time.Time   `json:"orderDate"`
	ConfirmedAt     *time.Time  `json:"confirmedAt,omitempty"`
	ProcessedAt     *time.Time  `json:"processedAt,omitempty"`
	ShippedAt       *time.Time  `json:"shippedAt,omitempty"`
	DeliveredAt     *time.Time  `json:"deliveredAt,omitempty"`
	ReceivedAt      *time.Time  `json:"receivedAt,omitempty"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	DeliveryFee     float64     `json:"deliveryFee"`
	Tax             float64     `json:"tax"`
	Discount        *float64    `json:"discount,omitempty"`
	Total           float64     `json:"total"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty"`
	Buyer           *Party      `json:"buyer,omitempty"`
	Seller          *Party      `json:"seller,omitempty"`
	Notes           string      `json:"notes,omitempty"`
}

type NewOrder struct {
	DeliveryAddress string `json:"deliveryAddress"`
	City            string `json:"city,omitempty"`
	Phone           string `json:"phone"`
	PaymentMethod   string `json:"paymentMethod"`
	Notes           string `json:"notes,omitempty"`
}

type Review struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	ProductID string    `json:"productId"`
	BuyerName string    `json:"buyerName,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewReview struct {
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Price       float64  `json:"price"`
	Unit        string   `json:"unit,omitempty"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images,omitempty"`
	SellerID    string   `json:"sellerId,omitempty"`
	FarmName    string   `json:"farmName,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	IsOrganic   bool     `json:"isOrganic,omitempty"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Count int    `json:"productCount,omitempty"`
}

type Testimonial struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
	Avatar  string `json:"avatar,omitempty"`
}

type Feedback struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
	Rating  int    `json:"rating,omitempty"`
}

// DashboardStats carries the union of the buyer and seller counters; each
// role's endpoint fills its own subset.
type DashboardStats struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	TotalSpent      float64 `json:"totalSpent,omitempty"`
	FavoriteCount   int     `json:"favoriteCount,omitempty"`
	TotalRevenue    float64 `json:"totalRevenue,omitempty"`
	TotalProducts   int     `json:"totalProducts,omitempty"`
	AverageRating   float64 `json:"averageRating,omitempty"`
}

// ProfileUpdate carries only the fields being changed.
type ProfileUpdate struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	FarmName     *string `json:"farmName,omitempty"`
	FarmLocation *string `json:"farmLocation,omitempty"`
}
