package domain

import "errors"

var (
	// ErrProductNotFound signals that no product exists for the given identifier.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProductID signals a malformed product identifier.
	ErrInvalidProductID = errors.New("invalid product id")
	// ErrInvalidInput signals a client request that fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingEmbedding signals a product without the embedding vector a
	// similarity lookup needs.
	ErrMissingEmbedding = errors.New("product is missing embeddings")
	// ErrMissingImage signals a product without images for the assistant flow.
	ErrMissingImage = errors.New("product is missing images")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrAssistantProviderError signals a chat completion provider failure.
	ErrAssistantProviderError = errors.New("assistant provider error")
)
