// Package config manages user-level settings stored at ~/.kiln/config.yaml.
// Settings pre-fill blueprint answers (author name and email, preferred AI
// tool) so repeat scaffold runs don't re-ask for stable facts.
package config
