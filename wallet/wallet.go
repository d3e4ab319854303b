// Package wallet provides typed calls to the FamilyCoin API. State changing
// calls are signed with the key pair of the current user.
package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/familycoin/go-familycoin/client"
	"github.com/familycoin/go-familycoin/core/payload"
)

var log = logging.Logger("wallet")

// Option is an option configuring a wallet.
type Option func(w *Wallet)

// WithClock configures the clock used to timestamp signed messages.
func WithClock(now func() time.Time) Option {
	return func(w *Wallet) {
		w.now = now
	}
}

type Wallet struct {
	client *client.Client
	keys   KeySource
	now    func() time.Time
}

func New(c *client.Client, keys KeySource, options ...Option) *Wallet {
	w := Wallet{client: c, keys: keys, now: time.Now}
	for _, opt := range options {
		opt(&w)
	}
	return &w
}

// timestamp returns the current time in fractional Unix seconds.
func (w *Wallet) timestamp() float64 {
	return float64(w.now().UnixMicro()) / 1e6
}

type detailResponse struct {
	Detail string `json:"detail"`
}

// Login exchanges a username or UID and password for the user's key pair.
// The wallet's own KeySource is not modified.
func (w *Wallet) Login(ctx context.Context, usernameOrUID, password string) (LoginResult, error) {
	data, err := w.client.Post(ctx, "/login", map[string]string{
		"username_or_uid": usernameOrUID,
		"password":        password,
	})
	if err != nil {
		return LoginResult{}, err
	}
	var res LoginResult
	if err := json.Unmarshal(data, &res); err != nil {
		return LoginResult{}, fmt.Errorf("decoding login response: %w", err)
	}
	log.Debugw("logged in", "uid", res.UID)
	return res, nil
}

// Balance returns the balance of the current user.
func (w *Wallet) Balance(ctx context.Context) (float64, error) {
	var res struct {
		Balance float64 `json:"balance"`
	}
	if err := w.getOwn(ctx, "/balance", nil, &res); err != nil {
		return 0, err
	}
	return res.Balance, nil
}

// History returns the transactions of the current user, newest first.
func (w *Wallet) History(ctx context.Context) ([]map[string]any, error) {
	var res struct {
		Transactions []map[string]any `json:"transactions"`
	}
	if err := w.getOwn(ctx, "/history", nil, &res); err != nil {
		return nil, err
	}
	return res.Transactions, nil
}

// MyNFTs returns the NFTs owned by the current user.
func (w *Wallet) MyNFTs(ctx context.Context) ([]NFT, error) {
	var res struct {
		NFTs []NFT `json:"nfts"`
	}
	if err := w.getOwn(ctx, "/nfts/my", nil, &res); err != nil {
		return nil, err
	}
	return res.NFTs, nil
}

// Listings returns the active market listings of a type, excluding the
// current user's own.
func (w *Wallet) Listings(ctx context.Context, listingType ListingType) ([]map[string]any, error) {
	pub, err := w.keys.PublicKeyPEM()
	if err != nil {
		return nil, err
	}
	params := url.Values{"listing_type": {string(listingType)}, "exclude_owner": {pub}}
	data, err := w.client.Get(ctx, "/market/listings", params)
	if err != nil {
		return nil, err
	}
	var res struct {
		Listings []map[string]any `json:"listings"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decoding listings: %w", err)
	}
	return res.Listings, nil
}

// Transfer sends amount to the holder of the public key to. An empty note is
// omitted.
func (w *Wallet) Transfer(ctx context.Context, to string, amount float64, note string) (string, error) {
	return w.signedPost(ctx, "/transaction", func(pub string) any {
		msg := TransactionMessage{FromKey: pub, ToKey: to, Amount: amount, Timestamp: w.timestamp()}
		if note != "" {
			msg.Note = &note
		}
		return msg
	})
}

// BuyItem buys a SALE listing.
func (w *Wallet) BuyItem(ctx context.Context, listingID string) (string, error) {
	return w.signedPost(ctx, "/market/buy", func(pub string) any {
		return MarketActionMessage{OwnerKey: pub, ListingID: listingID, Timestamp: w.timestamp()}
	})
}

// PlaceBid bids amount on an AUCTION listing.
func (w *Wallet) PlaceBid(ctx context.Context, listingID string, amount float64) (string, error) {
	return w.signedPost(ctx, "/market/place_bid", func(pub string) any {
		return BidMessage{OwnerKey: pub, ListingID: listingID, Amount: amount, Timestamp: w.timestamp()}
	})
}

// CreateListing puts an NFT up for sale or auction, or posts a SEEK request.
func (w *Wallet) CreateListing(ctx context.Context, l Listing) (string, error) {
	if l.Type == "" {
		l.Type = ListingSale
	}
	return w.signedPost(ctx, "/market/create_listing", func(pub string) any {
		msg := ListingMessage{
			OwnerKey:    pub,
			Timestamp:   w.timestamp(),
			ListingType: l.Type,
			NFTType:     l.NFTType,
			Description: l.Description,
			Price:       l.Price,
		}
		if l.Type != ListingSeek && l.NFTID != "" {
			msg.NFTID = &l.NFTID
		}
		if l.Type == ListingAuction {
			msg.AuctionHours = &l.AuctionHours
		}
		return msg
	})
}

// CancelListing withdraws one of the current user's listings.
func (w *Wallet) CancelListing(ctx context.Context, listingID string) (string, error) {
	return w.signedPost(ctx, "/market/cancel_listing", func(pub string) any {
		return MarketActionMessage{OwnerKey: pub, ListingID: listingID, Timestamp: w.timestamp()}
	})
}

// NFTAction performs action on an owned NFT. data may be nil.
func (w *Wallet) NFTAction(ctx context.Context, nftID, action string, data map[string]any) (string, error) {
	return w.signedPost(ctx, "/nfts/action", func(pub string) any {
		return NFTActionMessage{OwnerKey: pub, NFTID: nftID, Action: action, ActionData: data, Timestamp: w.timestamp()}
	})
}

func (w *Wallet) getOwn(ctx context.Context, path string, params url.Values, bind any) error {
	pub, err := w.keys.PublicKeyPEM()
	if err != nil {
		return err
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("public_key", pub)
	data, err := w.client.Get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, bind); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// signedPost builds a message for the current user's public key, signs it and
// posts it to path. It returns the detail of the success response.
func (w *Wallet) signedPost(ctx context.Context, path string, build func(publicKey string) any) (string, error) {
	pub, err := w.keys.PublicKeyPEM()
	if err != nil {
		return "", err
	}
	priv, err := w.keys.PrivateKeyPEM()
	if err != nil {
		return "", err
	}
	p, err := payload.Sign(priv, build(pub))
	if err != nil {
		return "", err
	}
	log.Debugw("signed request", "path", path, "link", payload.Link(p))

	data, err := w.client.Post(ctx, path, p)
	if err != nil {
		return "", err
	}
	var res detailResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return "", fmt.Errorf("decoding %s response: %w", path, err)
	}
	return res.Detail, nil
}
