package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
)

// ErrNoEmail means the user exists but has no email address to notify.
var ErrNoEmail = errors.New("user has no email address")

// Recipient is the contact information of a user.
type Recipient struct {
	Email     string
	FirstName string
}

// RecipientLookup resolves a user id (as injected by the auth middleware)
// into contact information.
type RecipientLookup interface {
	LookupRecipient(ctx context.Context, userID string) (*Recipient, error)
}

// clerkRecipients looks users up through the Clerk backend API.
// The API key is set globally by service.NewServices.
type clerkRecipients struct{}

// NewClerkRecipientLookup returns a RecipientLookup backed by Clerk.
func NewClerkRecipientLookup() RecipientLookup {
	return clerkRecipients{}
}

func (clerkRecipients) LookupRecipient(ctx context.Context, userID string) (*Recipient, error) {
	usr, err := user.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return recipientFromUser(usr)
}

// recipientFromUser prefers the primary email address, then the first one.
func recipientFromUser(usr *clerk.User) (*Recipient, error) {
	recipient := &Recipient{}
	if usr.FirstName != nil {
		recipient.FirstName = *usr.FirstName
	}

	for _, address := range usr.EmailAddresses {
		if address == nil {
			continue
		}
		if usr.PrimaryEmailAddressID != nil && address.ID == *usr.PrimaryEmailAddressID {
			recipient.Email = address.EmailAddress
			return recipient, nil
		}
		if recipient.Email == "" {
			recipient.Email = address.EmailAddress
		}
	}

	if recipient.Email == "" {
		return nil, ErrNoEmail
	}
	return recipient, nil
}
