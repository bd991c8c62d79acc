package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// LoadJSON читает документ в dst
// Возвращает false, если документа нет или он повреждён: вызывающий остаётся со значением по умолчанию
// Повреждённый документ логируется как предупреждение и никогда не приводит к ошибке
func LoadJSON(ctx context.Context, store Store, key string, dst interface{}, logger Logger) bool {
	raw, err := store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("LoadJSON: failed to load key=%s, using defaults: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Warn("LoadJSON: %v: key=%s, using defaults: %v", ErrCorrupted, key, err)
		return false
	}

	return true
}

// SaveJSON сериализует значение и сохраняет его под ключом
func SaveJSON(ctx context.Context, store Store, key string, value interface{}) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal key=%s: %v", ErrCorrupted, key, err)
	}

	if err := store.Save(ctx, key, raw); err != nil {
		return raw, err
	}

	return raw, nil
}
