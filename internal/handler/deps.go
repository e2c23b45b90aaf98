package handler

import (
	"ktchat/internal/app/chat"
	"ktchat/internal/app/file"
	"ktchat/internal/app/user"
	"ktchat/internal/configs"
)

// AppDeps bundles the services the HTTP handlers depend on.
type AppDeps struct {
	Config         *configs.AppConfig
	FileService    *file.Service
	ProfileService *user.ProfileService
	ChatService    *chat.Service
	Hub            *chat.Hub
}
