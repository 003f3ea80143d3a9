// Package config loads runtime configuration for the pubsub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see Default).
//  2. Optional config file selected with --config (-c): YAML (.yaml, .yml)
//     or JSON with comments (.json, .jsonc).
//  3. Environment variables PUBSUB_<KEY>, e.g. PUBSUB_SUBSCRIBE_KEY.
//  4. Command-line flags, which override everything else. Only flags that
//     were actually given are applied.
//
// Keys
//
// File keys are snake_case, flags are the same names in kebab-case:
//
//	origin              --origin              PUBSUB_ORIGIN
//	publish_key         --publish-key         PUBSUB_PUBLISH_KEY
//	subscribe_key       --subscribe-key       PUBSUB_SUBSCRIBE_KEY
//	user_id             --user-id             PUBSUB_USER_ID
//	auth_token          --auth-token          PUBSUB_AUTH_TOKEN
//	cipher_key          --cipher-key          PUBSUB_CIPHER_KEY
//	cipher_salt         --cipher-salt         PUBSUB_CIPHER_SALT
//	cipher_encoding     --cipher-encoding     PUBSUB_CIPHER_ENCODING
//	filter_expression   --filter-expression   PUBSUB_FILTER_EXPRESSION
//	heartbeat           --heartbeat           PUBSUB_HEARTBEAT
//	subscribe_timeout   --subscribe-timeout   PUBSUB_SUBSCRIBE_TIMEOUT
//	request_timeout     --request-timeout     PUBSUB_REQUEST_TIMEOUT
//	max_retries         --max-retries         PUBSUB_MAX_RETRIES
//	dedupe_on_subscribe --dedupe-on-subscribe PUBSUB_DEDUPE_ON_SUBSCRIBE
//	dedupe_cache_size   --dedupe-cache-size   PUBSUB_DEDUPE_CACHE_SIZE
//	db_path             --db-path             PUBSUB_DB_PATH
//	log_level           --log-level           PUBSUB_LOG_LEVEL
//
// Durations accept Go duration strings ("310s", "1m") or integer seconds.
//
// # Example
//
//	# pubsub.yaml
//	subscribe_key: sub-c-demo
//	publish_key: pub-c-demo
//	cipher_key: "correct horse battery staple"
//	subscribe_timeout: 5m
//	log_level: debug
package config
