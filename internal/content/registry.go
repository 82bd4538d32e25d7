// Package content holds the chapter registry and renders chapter bodies
// from markdown.
package content

// Difficulty grades a chapter for the reader.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Subsection is a third-level entry within a section.
type Subsection struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Order int    `json:"order"`
}

// Section is a top-level division of a chapter.
type Section struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Order         int          `json:"order"`
	EstimatedTime int          `json:"estimatedTime"`
	Subsections   []Subsection `json:"subsections,omitempty"`
}

// Chapter describes one chapter of the book.
type Chapter struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Slug               string     `json:"slug"`
	Description        string     `json:"description"`
	Icon               string     `json:"icon"`
	Order              int        `json:"order"`
	ReadingTime        int        `json:"readingTime"`
	Difficulty         Difficulty `json:"difficulty"`
	Prerequisites      []string   `json:"prerequisites"`
	LearningObjectives []string   `json:"learningObjectives"`
	Sections           []Section  `json:"sections"`
	Published          bool       `json:"published"`
}

var chapters = []Chapter{
	{
		ID:            "linear-algebra",
		Title:         "Linear Algebra",
		Slug:          "linear-algebra",
		Description:   "Vectors, matrices, and linear transformations. The mathematical foundation that underlies most machine learning algorithms.",
		Icon:          "📐",
		Order:         1,
		ReadingTime:   45,
		Difficulty:    Beginner,
		Prerequisites: []string{"Basic algebra", "High school mathematics"},
		LearningObjectives: []string{
			"Understand vector spaces and operations",
			"Master matrix multiplication and properties",
			"Learn eigenvalues and eigenvectors",
			"Apply linear transformations to data",
		},
		Sections: []Section{
			{
				ID: "vectors", Title: "Vectors and Vector Spaces", Slug: "vectors",
				Order: 1, EstimatedTime: 15,
				Subsections: []Subsection{
					{ID: "vector-basics", Title: "Vector Basics", Slug: "vector-basics", Order: 1},
					{ID: "vector-operations", Title: "Vector Operations", Slug: "vector-operations", Order: 2},
					{ID: "vector-spaces", Title: "Vector Spaces", Slug: "vector-spaces", Order: 3},
				},
			},
			{
				ID: "matrices", Title: "Matrix Operations", Slug: "matrices",
				Order: 2, EstimatedTime: 20,
				Subsections: []Subsection{
					{ID: "matrix-basics", Title: "Matrix Fundamentals", Slug: "matrix-basics", Order: 1},
					{ID: "matrix-multiplication", Title: "Matrix Multiplication", Slug: "matrix-multiplication", Order: 2},
					{ID: "matrix-inverse", Title: "Matrix Inverse", Slug: "matrix-inverse", Order: 3},
				},
			},
			{
				ID: "eigenvalues", Title: "Eigenvalues and Eigenvectors", Slug: "eigenvalues",
				Order: 3, EstimatedTime: 10,
			},
		},
		Published: true,
	},
	{
		ID:            "matrices",
		Title:         "Advanced Matrix Theory",
		Slug:          "matrices",
		Description:   "Deep dive into matrix operations, decompositions, and their applications in machine learning algorithms.",
		Icon:          "🔢",
		Order:         2,
		ReadingTime:   40,
		Difficulty:    Intermediate,
		Prerequisites: []string{"Linear Algebra basics", "Vector operations"},
		LearningObjectives: []string{
			"Master advanced matrix operations",
			"Understand matrix decompositions (SVD, LU, QR)",
			"Apply matrix techniques to dimensionality reduction",
			"Solve systems of linear equations",
		},
		Sections: []Section{
			{
				ID: "matrix-decomposition", Title: "Matrix Decomposition", Slug: "matrix-decomposition",
				Order: 1, EstimatedTime: 20,
				Subsections: []Subsection{
					{ID: "svd", Title: "Singular Value Decomposition", Slug: "svd", Order: 1},
					{ID: "lu-decomposition", Title: "LU Decomposition", Slug: "lu-decomposition", Order: 2},
					{ID: "qr-decomposition", Title: "QR Decomposition", Slug: "qr-decomposition", Order: 3},
				},
			},
			{
				ID: "matrix-applications", Title: "Applications in ML", Slug: "matrix-applications",
				Order: 2, EstimatedTime: 20,
				Subsections: []Subsection{
					{ID: "pca", Title: "Principal Component Analysis", Slug: "pca", Order: 1},
					{ID: "linear-regression", Title: "Linear Regression", Slug: "linear-regression", Order: 2},
				},
			},
		},
		Published: true,
	},
	{
		ID:            "probability",
		Title:         "Probability Theory",
		Slug:          "probability",
		Description:   "Fundamental concepts of probability, random variables, and distributions essential for machine learning.",
		Icon:          "🎲",
		Order:         3,
		ReadingTime:   50,
		Difficulty:    Beginner,
		Prerequisites: []string{"Basic calculus", "Set theory"},
		LearningObjectives: []string{
			"Understand probability fundamentals",
			"Work with random variables and distributions",
			"Apply Bayes' theorem",
			"Model uncertainty in machine learning",
		},
		Sections: []Section{
			{
				ID: "probability-basics", Title: "Probability Fundamentals", Slug: "probability-basics",
				Order: 1, EstimatedTime: 15,
				Subsections: []Subsection{
					{ID: "sample-spaces", Title: "Sample Spaces and Events", Slug: "sample-spaces", Order: 1},
					{ID: "probability-rules", Title: "Probability Rules", Slug: "probability-rules", Order: 2},
				},
			},
			{
				ID: "distributions", Title: "Probability Distributions", Slug: "distributions",
				Order: 2, EstimatedTime: 25,
				Subsections: []Subsection{
					{ID: "discrete-distributions", Title: "Discrete Distributions", Slug: "discrete-distributions", Order: 1},
					{ID: "continuous-distributions", Title: "Continuous Distributions", Slug: "continuous-distributions", Order: 2},
					{ID: "normal-distribution", Title: "Normal Distribution", Slug: "normal-distribution", Order: 3},
				},
			},
			{
				ID: "bayes-theorem", Title: "Bayes' Theorem", Slug: "bayes-theorem",
				Order: 3, EstimatedTime: 10,
			},
		},
		Published: true,
	},
	{
		ID:            "statistics",
		Title:         "Statistics for ML",
		Slug:          "statistics",
		Description:   "Statistical methods, hypothesis testing, and inference techniques used in machine learning.",
		Icon:          "📊",
		Order:         4,
		ReadingTime:   35,
		Difficulty:    Intermediate,
		Prerequisites: []string{"Probability theory", "Basic calculus"},
		LearningObjectives: []string{
			"Perform statistical inference",
			"Understand hypothesis testing",
			"Apply statistical methods to data",
			"Evaluate model performance statistically",
		},
		Sections: []Section{
			{
				ID: "descriptive-stats", Title: "Descriptive Statistics", Slug: "descriptive-stats",
				Order: 1, EstimatedTime: 10,
			},
			{
				ID: "inferential-stats", Title: "Statistical Inference", Slug: "inferential-stats",
				Order: 2, EstimatedTime: 15,
				Subsections: []Subsection{
					{ID: "confidence-intervals", Title: "Confidence Intervals", Slug: "confidence-intervals", Order: 1},
					{ID: "hypothesis-testing", Title: "Hypothesis Testing", Slug: "hypothesis-testing", Order: 2},
				},
			},
			{
				ID: "regression-analysis", Title: "Regression Analysis", Slug: "regression-analysis",
				Order: 3, EstimatedTime: 10,
			},
		},
		Published: true,
	},
	{
		ID:            "optimization",
		Title:         "Optimization Theory",
		Slug:          "optimization",
		Description:   "Mathematical optimization techniques including gradient descent and algorithms used to train machine learning models.",
		Icon:          "📈",
		Order:         5,
		ReadingTime:   55,
		Difficulty:    Advanced,
		Prerequisites: []string{"Calculus", "Linear algebra", "Vector operations"},
		LearningObjectives: []string{
			"Understand optimization fundamentals",
			"Master gradient descent algorithms",
			"Apply constrained optimization",
			"Optimize machine learning models",
		},
		Sections: []Section{
			{
				ID: "optimization-basics", Title: "Optimization Fundamentals", Slug: "optimization-basics",
				Order: 1, EstimatedTime: 15,
				Subsections: []Subsection{
					{ID: "objective-functions", Title: "Objective Functions", Slug: "objective-functions", Order: 1},
					{ID: "convex-optimization", Title: "Convex Optimization", Slug: "convex-optimization", Order: 2},
				},
			},
			{
				ID: "gradient-descent", Title: "Gradient Descent", Slug: "gradient-descent",
				Order: 2, EstimatedTime: 25,
				Subsections: []Subsection{
					{ID: "basic-gradient-descent", Title: "Basic Gradient Descent", Slug: "basic-gradient-descent", Order: 1},
					{ID: "stochastic-gd", Title: "Stochastic Gradient Descent", Slug: "stochastic-gd", Order: 2},
					{ID: "advanced-optimizers", Title: "Advanced Optimizers", Slug: "advanced-optimizers", Order: 3},
				},
			},
			{
				ID: "constrained-optimization", Title: "Constrained Optimization", Slug: "constrained-optimization",
				Order: 3, EstimatedTime: 15,
				Subsections: []Subsection{
					{ID: "lagrange-multipliers", Title: "Lagrange Multipliers", Slug: "lagrange-multipliers", Order: 1},
					{ID: "kkt-conditions", Title: "KKT Conditions", Slug: "kkt-conditions", Order: 2},
				},
			},
		},
		Published: true,
	},
}

// Chapters returns all chapters in registry order.
func Chapters() []Chapter {
	out := make([]Chapter, len(chapters))
	copy(out, chapters)
	return out
}

// BySlug finds a chapter by its URL slug.
func BySlug(slug string) (Chapter, bool) {
	for _, c := range chapters {
		if c.Slug == slug {
			return c, true
		}
	}
	return Chapter{}, false
}

// ByID finds a chapter by its registry id.
func ByID(id string) (Chapter, bool) {
	for _, c := range chapters {
		if c.ID == id {
			return c, true
		}
	}
	return Chapter{}, false
}

// Published returns only published chapters, in order.
func Published() []Chapter {
	var out []Chapter
	for _, c := range chapters {
		if c.Published {
			out = append(out, c)
		}
	}
	return out
}

// Navigation returns the published chapters before and after the given slug.
// Either may be nil at the ends of the book.
func Navigation(slug string) (prev, next *Chapter) {
	pub := Published()
	for i := range pub {
		if pub[i].Slug != slug {
			continue
		}
		if i > 0 {
			prev = &pub[i-1]
		}
		if i < len(pub)-1 {
			next = &pub[i+1]
		}
		return prev, next
	}
	return nil, nil
}
