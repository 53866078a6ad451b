package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/golang-cz/devslog"

	"github.com/abrabant/brabantapi/internal/blogservice"
	"github.com/abrabant/brabantapi/internal/common"
	"github.com/abrabant/brabantapi/internal/mailservice"
	"github.com/abrabant/brabantapi/internal/projectservice"
	"github.com/abrabant/brabantapi/internal/techservice"
	"github.com/abrabant/brabantapi/internal/userservice"
)

type application struct {
	config            *Config
	logger            *slog.Logger
	userService       *userservice.UserService
	blogpostService   *blogservice.BlogpostService
	projectService    *projectservice.ProjectService
	technologyService *techservice.TechnologyService
	mailService       *mailservice.MailService
	broker            *common.MessageBroker
}

func newLogger(environment string) *slog.Logger {
	if environment == "development" {
		return slog.New(devslog.NewHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func main() {
	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.Environment)

	// Initialize the database
	db, err := common.NewDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Initialize the message broker
	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupContactExchange(broker)
	if err != nil {
		logger.Error("failed to setup the contact exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the services
	app := &application{
		config:            cfg,
		logger:            logger,
		userService:       userservice.NewUserService(db),
		blogpostService:   blogservice.NewBlogpostService(db, logger),
		projectService:    projectservice.NewProjectService(db, logger),
		technologyService: techservice.NewTechnologyService(db),
		mailService:       mailservice.NewMailService(broker, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Recipient, cfg.Mail.Port, logger),
		broker:            broker,
	}

	// Initialize the contact-mail consumer
	app.mailService.SendContactEmail()
	defer app.mailService.Close()

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
