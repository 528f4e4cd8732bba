// Package cache fornece o cache de respostas de busca, com
// implementação em memória (default) e Redis (quando configurado).
package cache

import (
	"context"
	"time"
)

// Cache é o contrato do cache de respostas. Get retorna o valor bruto
// e um booleano de presença; expiração nunca é erro.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Del(ctx context.Context, key string)
}
