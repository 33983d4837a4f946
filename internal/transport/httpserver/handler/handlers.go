package handler

import (
	chatdomain "roomie-app-go/internal/domain/chat"
	cleaningdomain "roomie-app-go/internal/domain/cleaning"
	roomdomain "roomie-app-go/internal/domain/room"
	shoppingdomain "roomie-app-go/internal/domain/shopping"
	tasksdomain "roomie-app-go/internal/domain/tasks"
	userdomain "roomie-app-go/internal/domain/user"
	"roomie-app-go/pkg/logger"
)

type Handlers struct {
	Users    *userdomain.Service
	Rooms    *roomdomain.Service
	Tasks    *tasksdomain.Service
	Shopping *shoppingdomain.Service
	Cleaning *cleaningdomain.Service
	Chat     *chatdomain.Service
	log      logger.Logger
}

func New(
	users *userdomain.Service,
	rooms *roomdomain.Service,
	tasks *tasksdomain.Service,
	shopping *shoppingdomain.Service,
	cleaning *cleaningdomain.Service,
	chat *chatdomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Users:    users,
		Rooms:    rooms,
		Tasks:    tasks,
		Shopping: shopping,
		Cleaning: cleaning,
		Chat:     chat,
		log:      log,
	}
}
