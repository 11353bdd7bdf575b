package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/saadjs/drinklog/internal/model"
)

type AddTemplateInput struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Glyph    string  `json:"glyph" validate:"max=16"`
	Strength float64 `json:"strength" validate:"gte=0"`
	Volume   float64 `json:"volume" validate:"gt=0"`
	Category string  `json:"category" validate:"oneof=beer sake wine shochu whisky cocktail other"`
}

func (t *Tracker) Templates(ctx context.Context) ([]model.BeverageTemplate, error) {
	return t.repo.Templates(ctx)
}

// AddTemplate stores a custom beverage. Built-in names are never overwritten.
func (t *Tracker) AddTemplate(ctx context.Context, in AddTemplateInput) (model.BeverageTemplate, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if in.Category == "" {
		in.Category = "other"
	}
	if err := t.validateInput(in); err != nil {
		return model.BeverageTemplate{}, err
	}
	tmpl, err := t.repo.AddTemplate(ctx, model.BeverageTemplate{
		Name:            in.Name,
		Glyph:           strings.TrimSpace(in.Glyph),
		DefaultStrength: in.Strength,
		DefaultVolumeMl: in.Volume,
		Category:        in.Category,
	})
	if err != nil {
		return model.BeverageTemplate{}, err
	}
	t.log.Info("beverage template added", slog.String("name", tmpl.Name))
	return tmpl, nil
}

func (t *Tracker) DeleteTemplate(ctx context.Context, name string) error {
	if err := t.repo.DeleteTemplate(ctx, strings.TrimSpace(name)); err != nil {
		return err
	}
	t.log.Info("beverage template deleted", slog.String("name", name))
	return nil
}
