// Package config loads the quiz profile: what the quiz is about, how the
// model is prompted, and the copy shown to the user.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/venusquiz/internal/quiz"
)

// EnvPath names the environment variable that points at a profile file.
const EnvPath = "VENUSQUIZ_CONFIG"

// Profile is the full quiz configuration.
type Profile struct {
	// Brand is the community the quiz recruits for.
	Brand string `yaml:"brand"`

	// Role is the position the candidate is applying for.
	Role string `yaml:"role"`

	// Topic describes the subject of the questions.
	Topic string `yaml:"topic"`

	// Language is the language questions and evaluations are written in.
	Language string `yaml:"language"`

	Questions  QuestionMix `yaml:"questions"`
	Style      []string    `yaml:"style"`
	Generation Sampling    `yaml:"generation"`
	Evaluation Sampling    `yaml:"evaluation"`

	Labels    quiz.DifficultyLabels `yaml:"labels"`
	Fallbacks quiz.Fallbacks        `yaml:"fallbacks"`
	UI        Copy                  `yaml:"ui"`
	LLM       LLM                   `yaml:"llm"`
	Server    Server                `yaml:"server"`
}

// QuestionMix is the requested size and difficulty split of a question set.
type QuestionMix struct {
	Count  int `yaml:"count"`
	Easy   int `yaml:"easy"`
	Medium int `yaml:"medium"`
	Hard   int `yaml:"hard"`
}

// Sampling configures a single kind of model request.
type Sampling struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Copy holds every user-visible string of the terminal UI.
type Copy struct {
	Title             string `yaml:"title"`
	Tagline           string `yaml:"tagline"`
	Start             string `yaml:"start"`
	Generating        string `yaml:"generating"`
	GenerationFailed  string `yaml:"generation_failed"`
	Progress          string `yaml:"progress"` // printf format: current, total
	ResultTitle       string `yaml:"result_title"`
	ScoreLabel        string `yaml:"score_label"`
	EvaluationTitle   string `yaml:"evaluation_title"`
	EvaluationPending string `yaml:"evaluation_pending"`
	Review            string `yaml:"review"`
	Home              string `yaml:"home"`
	ReviewTitle       string `yaml:"review_title"`
	CorrectTag        string `yaml:"correct_tag"`
	ChosenTag         string `yaml:"chosen_tag"`
	ExplanationLabel  string `yaml:"explanation_label"`
	Footer            string `yaml:"footer"`
}

// LLM overrides request behaviour of the model client. Zero values mean
// no timeout and a single attempt.
type LLM struct {
	Timeout time.Duration `yaml:"timeout"`
	Retry   struct {
		MaxAttempts int           `yaml:"max_attempts"`
		InitialWait time.Duration `yaml:"initial_wait"`
		MaxWait     time.Duration `yaml:"max_wait"`
	} `yaml:"retry"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// Default returns the VenusAR admin recruitment profile.
func Default() Profile {
	p := Profile{
		Brand:    "VenusAR",
		Role:     "Junior Admin",
		Topic:    "Discord management",
		Language: "Arabic (Modern/Professional)",
		Questions: QuestionMix{
			Count:  10,
			Easy:   3,
			Medium: 4,
			Hard:   3,
		},
		Style: []string{
			"Realistic scenarios, psychological management, technical crises, and social intelligence.",
			"Options must be very similar and tricky (skill-based).",
			`Explanation: a brief "Why" this is the correct choice in a professional tone.`,
			"Diversity: do not repeat questions from previous patterns. Every generation must feel fresh.",
		},
		Generation: Sampling{Temperature: 0.9, MaxTokens: 8192},
		Evaluation: Sampling{Temperature: 0.7, MaxTokens: 1024},
		Labels: quiz.DifficultyLabels{
			Easy:   "سهل",
			Medium: "متوسط",
			Hard:   "صعب",
		},
		Fallbacks: quiz.Fallbacks{
			Empty:   "أداء ملفت! استمر في تطوير مهاراتك الإدارية لتصبح جزءاً من نخبة VenusAR.",
			Failure: "أداء ممتاز! مهاراتك في التعامل مع المواقف تظهر إمكانات كبيرة كإداري واعد.",
		},
		UI: Copy{
			Title:             "أختبار إدارة VenusAR",
			Tagline:           "هل لديك ما يلزم لتصبح إداري في VenusAR؟ هذه الأسئلة بُنيت بأسباب مهنية سابقة من قبل الإداريين السابقين، نتمنى لك التوفيق.",
			Start:             "ابدأ الأختبار الأن",
			Generating:        "جاري بناء الاختبار...",
			GenerationFailed:  "حدث خطأ أثناء توليد الأسئلة، يرجى المحاولة مرة أخرى.",
			Progress:          "المهمة %d / %d",
			ResultTitle:       "تحليل الأداء الإداري",
			ScoreLabel:        "درجة التقييم:",
			EvaluationTitle:   "ملاحظات VenusAR التدريبية",
			EvaluationPending: "جاري فحص بروتوكولاتك الإدارية...",
			Review:            "مراجعة الأجوبة",
			Home:              "العودة للقائمة الرئيسية",
			ReviewTitle:       "بروتوكول المراجعة",
			CorrectTag:        "إجابة نموذجية",
			ChosenTag:         "اختيارك",
			ExplanationLabel:  "التحليل الإداري:",
			Footer:            "VENUSAR OFFICIAL",
		},
		Server: Server{
			Addr:         ":8080",
			AllowOrigins: []string{"*"},
		},
	}
	p.LLM.Retry.MaxAttempts = 1
	return p
}

// Load reads the profile at path on top of Default. An empty path or a
// missing file yields the defaults.
func Load(path string) (Profile, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return Profile{}, fmt.Errorf("load %s: %w", path, err)
	}
	return p, nil
}

// Decode parses YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (Profile, error) {
	p := Default()
	if err := yaml.NewDecoder(r).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// ResolvePath returns flagValue when set, otherwise $VENUSQUIZ_CONFIG.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvPath)
}

// Validate checks the profile for values that would make every attempt fail.
func (p Profile) Validate() error {
	q := p.Questions
	if q.Count <= 0 {
		return fmt.Errorf("questions.count must be positive, got %d", q.Count)
	}
	if q.Easy < 0 || q.Medium < 0 || q.Hard < 0 {
		return fmt.Errorf("questions split must not be negative")
	}
	if split := q.Easy + q.Medium + q.Hard; split != 0 && split != q.Count {
		return fmt.Errorf("questions split %d/%d/%d does not add up to count %d", q.Easy, q.Medium, q.Hard, q.Count)
	}
	for name, s := range map[string]Sampling{"generation": p.Generation, "evaluation": p.Evaluation} {
		if s.Temperature < 0 || s.Temperature > 2 {
			return fmt.Errorf("%s.temperature must be within [0,2], got %v", name, s.Temperature)
		}
		if s.MaxTokens < 0 {
			return fmt.Errorf("%s.max_tokens must not be negative", name)
		}
	}
	if p.Fallbacks.Empty == "" || p.Fallbacks.Failure == "" {
		return fmt.Errorf("fallbacks.empty and fallbacks.failure are required")
	}
	if p.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	return nil
}
