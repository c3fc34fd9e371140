// File: handlers/bundle.go
package handlers

import (
	userRepo "slotswapper/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration. UserRepo is carried for the auth middleware.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Auth *AuthHandler
	Slot *SlotHandler
	Swap *SwapHandler
}
