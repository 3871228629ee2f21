package llm

const (
	ToneProfessional = "professional"
	LengthMedium     = "medium"

	DefaultFactCount = 10
	MaxFactCount     = 20
	DefaultWordCount = 1000
)

type OutlineInput struct {
	Topic          string   `json:"topic"`
	Keywords       []string `json:"keywords,omitempty"`
	TargetAudience string   `json:"targetAudience,omitempty"`
	Tone           string   `json:"tone"`
	Length         string   `json:"length"`
}

func (in *OutlineInput) ApplyDefaults() {
	if in.Tone == "" {
		in.Tone = ToneProfessional
	}
	if in.Length == "" {
		in.Length = LengthMedium
	}
}

type OutlineSection struct {
	Heading     string   `json:"heading"`
	Subheadings []string `json:"subheadings"`
	KeyPoints   []string `json:"keyPoints"`
}

type OutlineOutput struct {
	Title              string           `json:"title"`
	Sections           []OutlineSection `json:"sections"`
	EstimatedWordCount int              `json:"estimatedWordCount"`
}

// SourceDocument 抓取到的参考资料
type SourceDocument struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

type FactsInput struct {
	Topic     string           `json:"topic"`
	Outline   string           `json:"outline,omitempty"`
	Sources   []string         `json:"sources,omitempty"`
	FactCount int              `json:"factCount"`
	Documents []SourceDocument `json:"documents,omitempty"`
}

func (in *FactsInput) ApplyDefaults() {
	if in.FactCount <= 0 {
		in.FactCount = DefaultFactCount
	}
	if in.FactCount > MaxFactCount {
		in.FactCount = MaxFactCount
	}
}

type Fact struct {
	ID         string  `json:"id,omitempty"`
	Statement  string  `json:"statement"`
	Source     string  `json:"source,omitempty"`
	Confidence float64 `json:"confidence"`
	Category   string  `json:"category"`
}

type FactsOutput struct {
	Facts      []Fact `json:"facts"`
	TotalCount int    `json:"totalCount"`
}

type ContentInput struct {
	Outline string   `json:"outline"`
	Facts   []string `json:"facts,omitempty"`
	Tone    string   `json:"tone"`
	Length  int      `json:"length"`
}

func (in *ContentInput) ApplyDefaults() {
	if in.Tone == "" {
		in.Tone = ToneProfessional
	}
	if in.Length == 0 {
		in.Length = DefaultWordCount
	}
}

type ContentOutput struct {
	Content     string   `json:"content"`
	WordCount   int      `json:"wordCount"`
	ReadingTime int      `json:"readingTime"`
	KeyPoints   []string `json:"keyPoints"`
}

type SEOInput struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Keywords      []string `json:"keywords,omitempty"`
	TargetKeyword string   `json:"targetKeyword,omitempty"`
}

type SEOOutput struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Keywords           []string `json:"keywords"`
	OgTitle            string   `json:"ogTitle"`
	OgDescription      string   `json:"ogDescription"`
	TwitterTitle       string   `json:"twitterTitle"`
	TwitterDescription string   `json:"twitterDescription"`
	CanonicalURL       string   `json:"canonicalUrl,omitempty"`
}

type SummaryInput struct {
	Content string `json:"content"`
	Length  string `json:"length"`
	Format  string `json:"format"`
}

func (in *SummaryInput) ApplyDefaults() {
	if in.Length == "" {
		in.Length = LengthMedium
	}
	if in.Format == "" {
		in.Format = "paragraph"
	}
}

type SummaryOutput struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
	WordCount int      `json:"wordCount"`
}
