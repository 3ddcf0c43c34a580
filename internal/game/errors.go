package game

import "errors"

// Business-rule and validation failures. Each maps to a user-displayable
// reason at the HTTP boundary; none of them leaves partial state behind.
var (
	ErrAuthInvalid        = errors.New("invalid or expired session")
	ErrBotNotFound        = errors.New("bot not found or inactive")
	ErrWrongBot           = errors.New("player does not belong to this bot")
	ErrNoEnergy           = errors.New("not enough energy")
	ErrUnknownBoost       = errors.New("unknown boost type")
	ErrInsufficientFunds  = errors.New("insufficient coins")
	ErrAlreadyClaimed     = errors.New("daily reward already claimed today")
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrBelowMinimum       = errors.New("amount below minimum withdrawal")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidAddress     = errors.New("invalid wallet address")
	ErrNoReferral         = errors.New("player has no referrer")
)
