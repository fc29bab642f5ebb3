// Comando token emite um JWT assinado com AUTH_SECRET para acessar a API.
package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/authenticating"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	subject := pflag.String("subject", "dashboard", "identificação do portador do token")
	role := pflag.String("role", domain.RoleViewer, "papel do token (admin ou viewer)")
	ttl := pflag.Duration("ttl", cfg.Auth.TokenTTL, "validade do token")
	pflag.Parse()

	cfg.Auth.TokenTTL = *ttl

	token, err := authenticating.NewService(cfg.Auth).IssueToken(*subject, *role)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao emitir o token")
	}

	fmt.Println(token)
}
