package setup

import (
	"github.com/yogeshrakate/skill-matrix-backend/internal/config"
	"github.com/yogeshrakate/skill-matrix-backend/internal/crypto"
	"github.com/yogeshrakate/skill-matrix-backend/internal/handler"
	"github.com/yogeshrakate/skill-matrix-backend/internal/mailer"
	"github.com/yogeshrakate/skill-matrix-backend/internal/service"
	"github.com/yogeshrakate/skill-matrix-backend/internal/storage/pg"
	"github.com/yogeshrakate/skill-matrix-backend/internal/token"
)

// Dependencies holds all initialized collaborators.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Tokens  *token.Issuer
}

// SetupDependencies wires storage, crypto, mail and services together.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	cipher, err := crypto.NewLinkCipher(cfg.Private.EncryptionKey)
	if err != nil {
		return nil, err
	}

	tokens := token.New(cfg.SigningSecret(), cfg.TokenTTL())
	dispatcher := mailer.NewDispatcher(mailer.NewSMTP(&cfg.Private.Smtp), cipher, cfg.Public.BaseURL)

	auth := service.NewAuth(storage, dispatcher, cipher, tokens)
	entities := service.NewEntities(storage)

	h := handler.New(auth, entities, storage)

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Tokens:  tokens,
	}, nil
}
