package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/TsepisoMotloung/360-Rating/internal/app"
	"github.com/TsepisoMotloung/360-Rating/internal/domain"
)

// NewRouter собирает http.Handler со всеми эндпоинтами сервиса.
// defaults применяются, если параметры не переданы в запросе.
func NewRouter(
	repos *app.Repositories,
	converter app.ConverterService,
	defaults domain.RenderOptions,
	log *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	convertHandler := NewConvertHandler(repos, converter, defaults, log)

	mux.HandleFunc("/health", Health)
	mux.HandleFunc("/assignments/convert", convertHandler.Convert)

	return mux
}
