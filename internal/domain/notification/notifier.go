package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

type accountSender interface {
	SendToAccountJSON(accountID uuid.UUID, payload any) error
}

// BanNotifier pushes account:banned events over WebSocket so clients can
// force a logout. Delivery is best-effort.
type BanNotifier struct {
	sender accountSender
}

// NewBanNotifier creates a hub-backed ban notifier
func NewBanNotifier(sender accountSender) *BanNotifier {
	return &BanNotifier{sender: sender}
}

// NotifyBanned sends the logout push to the banned account
func (n *BanNotifier) NotifyBanned(ctx context.Context, accountID uuid.UUID, accountType account.Type, message string) error {
	if n == nil || n.sender == nil {
		return nil
	}

	payload := map[string]interface{}{
		"type": "account:banned",
		"data": map[string]interface{}{
			"account_type": string(accountType),
			"message":      message,
		},
	}

	return n.sender.SendToAccountJSON(accountID, payload)
}
