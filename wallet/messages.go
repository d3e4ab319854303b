package wallet

// TransactionMessage transfers FamilyCoin between two public keys.
type TransactionMessage struct {
	FromKey   string  `json:"from_key"`
	ToKey     string  `json:"to_key"`
	Amount    float64 `json:"amount"`
	Timestamp float64 `json:"timestamp"`
	Note      *string `json:"note,omitempty"`
}

// MarketActionMessage buys or cancels a market listing.
type MarketActionMessage struct {
	OwnerKey  string  `json:"owner_key"`
	ListingID string  `json:"listing_id"`
	Timestamp float64 `json:"timestamp"`
}

// BidMessage places a bid on an auction listing.
type BidMessage struct {
	OwnerKey  string  `json:"owner_key"`
	ListingID string  `json:"listing_id"`
	Amount    float64 `json:"amount"`
	Timestamp float64 `json:"timestamp"`
}

type ListingType string

const (
	ListingSale    ListingType = "SALE"
	ListingAuction ListingType = "AUCTION"
	ListingSeek    ListingType = "SEEK"
)

// Listing describes a new market listing. NFTID is empty for SEEK listings and
// AuctionHours is only sent for AUCTION listings.
type Listing struct {
	Type         ListingType
	NFTID        string
	NFTType      string
	Description  string
	Price        float64
	AuctionHours float64
}

// ListingMessage creates a market listing.
type ListingMessage struct {
	OwnerKey     string      `json:"owner_key"`
	Timestamp    float64     `json:"timestamp"`
	ListingType  ListingType `json:"listing_type"`
	NFTID        *string     `json:"nft_id"`
	NFTType      string      `json:"nft_type"`
	Description  string      `json:"description"`
	Price        float64     `json:"price"`
	AuctionHours *float64    `json:"auction_hours"`
}

// NFTActionMessage performs a type specific action on an owned NFT.
type NFTActionMessage struct {
	OwnerKey   string         `json:"owner_key"`
	NFTID      string         `json:"nft_id"`
	Action     string         `json:"action"`
	ActionData map[string]any `json:"action_data,omitempty"`
	Timestamp  float64        `json:"timestamp"`
}

type LoginResult struct {
	Message    string `json:"message"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
	Username   string `json:"username"`
	UID        string `json:"uid"`
}

// Keys returns the key pair handed out at login as a [KeySource].
func (r LoginResult) Keys() StaticKeys {
	return StaticKeys{PrivateKey: r.PrivateKey, PublicKey: r.PublicKey}
}

type NFT struct {
	NFTID     string         `json:"nft_id"`
	OwnerKey  string         `json:"owner_key"`
	NFTType   string         `json:"nft_type"`
	Data      map[string]any `json:"data"`
	CreatedAt float64        `json:"created_at"`
	Status    string         `json:"status"`
}
