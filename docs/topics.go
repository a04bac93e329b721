// Package docs embeds the user documentation, served by the
// `twf topic` command.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.md
var docs embed.FS

// GetTopic returns the content of a documentation topic. The special
// topic "*" concatenates all of them.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		return GetTopics(AllTopics()...)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of multiple topics concatenated together.
func GetTopics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// AllTopics returns the sorted list of available topics. readme is the
// index, not a topic.
func AllTopics() []string {
	files, _ := fs.Glob(docs, "*.md")
	var topics []string
	for _, f := range files {
		base := strings.TrimSuffix(f, ".md")
		if base == "readme" {
			continue
		}
		topics = append(topics, base)
	}
	sort.Strings(topics)
	return topics
}
