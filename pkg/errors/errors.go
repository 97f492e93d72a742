package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	// CodeMissingCredential means the Stripe secret key was absent from the
	// environment. Reported before any upstream call is attempted.
	CodeMissingCredential Code = "MISSING_CREDENTIAL"
	// CodeMalformedRequest means the request body could not be parsed.
	CodeMalformedRequest Code = "MALFORMED_REQUEST"
	// CodeEmptyCart means the item list was absent or empty.
	CodeEmptyCart Code = "EMPTY_CART"
	// CodeNoValidItems means every submitted item was filtered out.
	CodeNoValidItems Code = "NO_VALID_ITEMS"
	// CodeUpstreamPriceFetch wraps failures listing prices from Stripe.
	CodeUpstreamPriceFetch Code = "UPSTREAM_PRICE_FETCH_FAILED"
	// CodeUpstreamCheckout wraps failures creating a checkout session.
	CodeUpstreamCheckout Code = "UPSTREAM_CHECKOUT_FAILED"
	// CodeInternal covers everything else.
	CodeInternal Code = "INTERNAL_ERROR"
)

type Metadata struct {
	HTTPStatus    int
	PublicMessage string
	DetailAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeMissingCredential: {
		HTTPStatus:    http.StatusInternalServerError,
		PublicMessage: "Missing STRIPE_SECRET_KEY in environment variables.",
		DetailAllowed: false,
	},
	CodeMalformedRequest: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "Invalid JSON body.",
		DetailAllowed: false,
	},
	CodeEmptyCart: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "No items provided.",
		DetailAllowed: false,
	},
	CodeNoValidItems: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "No valid items provided.",
		DetailAllowed: false,
	},
	CodeUpstreamPriceFetch: {
		HTTPStatus:    http.StatusInternalServerError,
		PublicMessage: "Failed to fetch prices",
		DetailAllowed: true,
	},
	CodeUpstreamCheckout: {
		HTTPStatus:    http.StatusInternalServerError,
		PublicMessage: "Failed to create Stripe Checkout session.",
		DetailAllowed: true,
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		PublicMessage: "internal server error",
		DetailAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	detail  string
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Detail carries the best-available upstream diagnostic text: the provider's
// structured error message when present, else the raw response body, else the
// transport error text.
func (e *Error) Detail() string {
	if e == nil {
		return ""
	}
	return e.detail
}

func (e *Error) WithDetail(detail string) *Error {
	if e == nil {
		return nil
	}
	e.detail = detail
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
