package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Cookie      Cookie

	TravelAPI TravelAPI `envPrefix:"TRAVEL_API_"`
	Storage   Storage
}

type TravelAPI struct {
	BaseURL string        `env:"BASE_URL" envDefault:"https://travel-journal-api-bootcamp.do.dibimbing.id/api/v1"`
	APIKey  string        `env:"KEY"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"0s"` // 0 = transport default, no client timeout
}

type Storage struct {
	Driver        string `env:"STORAGE_DRIVER" envDefault:"sqlite"` // sqlite, mysql, redis
	DatabaseURL   string `env:"DATABASE_URL" envDefault:"travel-journal.db"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Cookie struct {
	Name   string `env:"CLIENT_COOKIE_NAME" envDefault:"travelapp_client"`
	Secure bool   `env:"CLIENT_COOKIE_SECURE" envDefault:"false"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
