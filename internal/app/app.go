// Package app пакет инициализации приложения
package app

import (
	"net/http"
)

// App структура собранного приложения. Хранит сервисы, репозитории и корневой HTTP-хендлер.
type App struct {
	Handler http.Handler

	Repos     *Repositories
	Converter ConverterService
}

// NewApp обертка в красивую структуру
func NewApp(
	handler http.Handler,
	repos *Repositories,
	converter ConverterService,
) *App {
	return &App{
		Handler:   handler,
		Repos:     repos,
		Converter: converter,
	}
}
