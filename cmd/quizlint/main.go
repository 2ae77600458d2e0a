// Command quizlint provides a small CLI that validates quiz definition JSON
// files before they are published to a broker. It checks:
//   - JSON structure and required fields
//   - Presence of at least one question
//   - Each question's prompt, option count, and answer index bounds
//   - Duplicate options within a question
//   - Time limit and point values, when present
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// QuizFile mirrors the JSON schema for a quiz definition on disk.
type QuizFile struct {
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Questions []Question `json:"questions"`
}

// Question is one entry of a quiz definition. Answer is a zero-based
// index into Options. TimeLimit and Points are optional; zero means the
// host decides at play time.
type Question struct {
	Prompt    string   `json:"prompt"`
	Options   []string `json:"options"`
	Answer    int      `json:"answer"`
	TimeLimit int      `json:"time_limit"`
	Points    int      `json:"points"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateQuiz loads and validates a single quiz definition JSON file.
func validateQuiz(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var quiz QuizFile
	if err := json.Unmarshal(data, &quiz); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if len(quiz.Questions) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Quiz must have at least 1 question")
	}

	totalPoints := 0
	for i, q := range quiz.Questions {
		n := i + 1

		if strings.TrimSpace(q.Prompt) == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Question %d: prompt is empty", n))
		}

		if len(q.Options) < 2 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Question %d: needs at least 2 options, got %d", n, len(q.Options)))
		}

		if q.Answer < 0 || q.Answer >= len(q.Options) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Question %d: answer index %d out of range [0,%d)", n, q.Answer, len(q.Options)))
		}

		seen := map[string]int{}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Question %d: option %d is empty", n, j+1))
				continue
			}
			if prev, dup := seen[opt]; dup {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Question %d: option %d duplicates option %d (%q)", n, j+1, prev+1, opt))
			} else {
				seen[opt] = j
			}
		}

		if q.TimeLimit < 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Question %d: time_limit must not be negative, got %d", n, q.TimeLimit))
		}

		if q.Points < 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Question %d: points must not be negative, got %d", n, q.Points))
		}

		totalPoints += q.Points
	}

	// Add informational data
	if result.Valid {
		title := quiz.Title
		if title == "" {
			title = "(untitled, broker will default it)"
		}
		author := quiz.Author
		if author == "" {
			author = "(anonymous)"
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Title: %s", title))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Author: %s", author))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Questions: %d", len(quiz.Questions)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Total points: %d", totalPoints))
	}

	return result
}

// main validates the quiz files named on the command line, or every
// *.json file under ./quizzes when no arguments are given, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	files := os.Args[1:]
	if len(files) == 0 {
		var err error
		files, err = filepath.Glob(filepath.Join("quizzes", "*.json"))
		if err != nil {
			fmt.Printf("Error finding quiz files: %v\n", err)
			os.Exit(1)
		}
	}

	if len(files) == 0 {
		fmt.Println("No quiz files to validate")
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateQuiz(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All quiz definitions are valid!")
	} else {
		fmt.Println("❌ Some quiz definitions have errors")
		os.Exit(1)
	}
}
