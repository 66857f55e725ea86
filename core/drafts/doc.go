// Package drafts persists the last settled pricing model of each modelling
// session so that a session survives restarts and idle eviction.
//
// RedisStore is used when Redis is enabled in the configuration; MemoryStore
// serves development setups and tests.
package drafts
