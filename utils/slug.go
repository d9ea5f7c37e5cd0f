package utils

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
)

// UniqueSlug slugifies name and appends -1, -2, ... until taken reports the slug is free.
func UniqueSlug(ctx context.Context, name string, taken func(context.Context, string) (bool, error)) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "item"
	}
	result := base
	for i := 1; ; i++ {
		used, err := taken(ctx, result)
		if err != nil {
			return "", err
		}
		if !used {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
	}
}
