package request

import (
	"net/url"
	"strings"

	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

const (
	DefaultSuccessPath = "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	DefaultCancelPath  = "/cart"
)

var (
	ErrAmbiguousRequest = errs.New("provide either priceId and mode, or items")
	ErrEmptyRequest     = errs.New("priceId or items is required")
	ErrLegacyDiscount   = errs.New("discount codes are only accepted with items")
	ErrInvalidReturnURL = errs.New("return URL must be on this site")
)

type CheckoutItem struct {
	PriceID  string `json:"priceId" binding:"required" copier:"PriceRef"`
	// Quantity is checked in Variant so a missing, zero or negative value reads as the same error.
	Quantity int `json:"quantity"`
}

// CheckoutRequest is the wire form of LegacyCheckoutRequest | CartCheckoutRequest. Kind decides
// which one it is; every other combination is rejected before the usecase runs.
type CheckoutRequest struct {
	PriceID      string         `json:"priceId"`
	Mode         string         `json:"mode"`
	Items        []CheckoutItem `json:"items" binding:"omitempty,dive"`
	DiscountCode string         `json:"discountCode" binding:"omitempty,max=64"`
	SuccessPath  string         `json:"successPath"`
	CancelPath   string         `json:"cancelPath"`
	SuccessURL   string         `json:"successUrl"`
	CancelURL    string         `json:"cancelUrl"`
	Email        string         `json:"email" binding:"omitempty,email"`
}

type LegacyCheckoutRequest struct {
	PriceID string
	Mode    checkout.Mode
}

type CartCheckoutRequest struct {
	Items        []CheckoutItem
	DiscountCode string
}

// Variant returns exactly one of the two request shapes.
func (r CheckoutRequest) Variant() (*LegacyCheckoutRequest, *CartCheckoutRequest, error) {
	hasLegacy := strings.TrimSpace(r.PriceID) != "" || r.Mode != ""
	hasCart := len(r.Items) > 0

	switch {
	case hasLegacy && hasCart:
		return nil, nil, ErrAmbiguousRequest
	case hasCart:
		for _, it := range r.Items {
			if it.Quantity < 1 {
				return nil, nil, checkout.ErrInvalidQuantity
			}
		}
		return nil, &CartCheckoutRequest{Items: r.Items, DiscountCode: strings.TrimSpace(r.DiscountCode)}, nil
	case hasLegacy:
		if strings.TrimSpace(r.DiscountCode) != "" {
			return nil, nil, ErrLegacyDiscount
		}
		if strings.TrimSpace(r.PriceID) == "" {
			return nil, nil, checkout.ErrEmptyPriceRef
		}
		mode, err := checkout.NewMode(r.Mode)
		if err != nil {
			return nil, nil, err
		}
		return &LegacyCheckoutRequest{PriceID: strings.TrimSpace(r.PriceID), Mode: mode}, nil, nil
	default:
		return nil, nil, ErrEmptyRequest
	}
}

// ToCommand validates the union and resolves return URLs against siteURL.
func (r CheckoutRequest) ToCommand(siteURL string, requester checkout.Requester) (commands.CheckoutCommand, error) {
	legacy, cart, err := r.Variant()
	if err != nil {
		return commands.CheckoutCommand{}, err
	}

	successURL, err := ResolveReturnURL(siteURL, r.SuccessURL, r.SuccessPath, DefaultSuccessPath)
	if err != nil {
		return commands.CheckoutCommand{}, err
	}
	cancelURL, err := ResolveReturnURL(siteURL, r.CancelURL, r.CancelPath, DefaultCancelPath)
	if err != nil {
		return commands.CheckoutCommand{}, err
	}

	if requester.Email == "" {
		requester.Email = strings.TrimSpace(r.Email)
	}
	cmd := commands.CheckoutCommand{
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Requester:  requester,
	}

	if legacy != nil {
		cmd.Legacy = &commands.LegacyItem{PriceRef: legacy.PriceID, Mode: legacy.Mode.String()}
		return cmd, nil
	}

	if err := copier.Copy(&cmd.Items, &cart.Items); err != nil {
		return commands.CheckoutCommand{}, errs.Wrap(err, "map cart items")
	}
	cmd.DiscountCode = cart.DiscountCode
	return cmd, nil
}

// ResolveReturnURL prefers a full override URL, then a site-relative path, then the fallback path.
// Full URLs must share the site's origin so the session cannot redirect elsewhere.
func ResolveReturnURL(siteURL, fullURL, path, fallback string) (string, error) {
	site, err := url.Parse(strings.TrimRight(siteURL, "/"))
	if err != nil || site.Scheme == "" || site.Host == "" {
		return "", errs.Wrapf(ErrInvalidReturnURL, "site url %q", siteURL)
	}

	if fullURL = strings.TrimSpace(fullURL); fullURL != "" {
		u, err := url.Parse(fullURL)
		if err != nil || !strings.EqualFold(u.Scheme, site.Scheme) || !strings.EqualFold(u.Host, site.Host) {
			return "", ErrInvalidReturnURL
		}
		return u.String(), nil
	}

	p := strings.TrimSpace(path)
	if p == "" {
		p = fallback
	}
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return "", ErrInvalidReturnURL
	}
	return site.Scheme + "://" + site.Host + strings.TrimRight(site.Path, "/") + p, nil
}
