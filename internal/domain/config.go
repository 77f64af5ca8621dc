package domain

// KeyPrefix namespaces every key yatra writes to the shared cache.
const KeyPrefix = "yatra:"
