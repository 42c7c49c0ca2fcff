// Package workload builds the synthetic input used by the main API probe.
package workload

import (
	"fmt"
	"os"
)

// QuestionsText is the fixed analysis task uploaded during the smoke test.
// It matches the example workload the service is documented with, so a
// healthy deployment should always be able to process it.
const QuestionsText = `Analyze the GDP data from https://en.wikipedia.org/wiki/List_of_countries_by_GDP_(nominal)

Questions to answer:
1. Which country has the highest GDP?
2. What are the top 10 countries by GDP?
3. What is the total GDP of the top 5 countries?
4. Create a visualization showing GDP comparison of top 10 countries
5. Which countries have GDP over $5 trillion?`

// CreateQuestionsFile writes QuestionsText to a fresh uniquely-named
// temporary file and returns its path. The file is closed before returning;
// the caller is responsible for removing it.
func CreateQuestionsFile() (string, error) {
	f, err := os.CreateTemp("", "questions-*.txt")
	if err != nil {
		return "", fmt.Errorf("create questions file: %w", err)
	}
	if _, err := f.WriteString(QuestionsText); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write questions file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close questions file: %w", err)
	}
	return f.Name(), nil
}
