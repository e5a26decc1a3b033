package domain

import "errors"

var (
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrDuplicateTicket  = errors.New("user already has an open ticket")
	ErrAlreadyResolved  = errors.New("ticket already resolved")
	ErrTicketClosed     = errors.New("ticket already closed")
	ErrForbidden        = errors.New("actor lacks permission")
	ErrOrderNotFound    = errors.New("order not found")
	ErrTerminalState    = errors.New("order already in a terminal state")
	ErrDiscountNotFound = errors.New("discount code not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrChannelNotFound  = errors.New("channel not found")
	ErrInvalidCustomID  = errors.New("malformed custom id")
)
