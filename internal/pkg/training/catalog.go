// Package training scores catalog programs against a consultant's skill gaps
// and derives learning paths, progress estimates and development plans.
package training

import (
	"sort"
	"strings"
)

// Difficulty of a training program
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// rank orders difficulties; unknown values sit in the middle
func (d Difficulty) rank() int {
	switch strings.ToLower(string(d)) {
	case "beginner":
		return 1
	case "advanced":
		return 3
	default:
		return 2
	}
}

// Impact is the expected career impact of finishing a program
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// Program is one entry of the training catalog
type Program struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Provider      string     `json:"provider"`
	Category      string     `json:"category"`
	DurationHours int        `json:"durationHours"`
	Difficulty    Difficulty `json:"difficulty"`
	Cost          float64    `json:"cost"`
	Certification bool       `json:"certification"`
	CertName      string     `json:"certName,omitempty"`
	Skills        []string   `json:"skills"`
	Prerequisites []string   `json:"prerequisites"`
	MarketDemand  int        `json:"marketDemand"`
	CareerImpact  Impact     `json:"careerImpact"`
	URL           string     `json:"url"`
	Rating        float64    `json:"rating"`
}

// Covers reports whether the program teaches skill. Names match when either
// lowercased name contains the other.
func (p Program) Covers(skill string) bool {
	s := strings.ToLower(strings.TrimSpace(skill))
	if s == "" {
		return false
	}
	for _, ps := range p.Skills {
		ps = strings.ToLower(ps)
		if strings.Contains(ps, s) || strings.Contains(s, ps) {
			return true
		}
	}
	return false
}

// Catalog is an ordered, read-only set of programs grouped by category
type Catalog struct {
	categories []string
	programs   map[string][]Program
}

// NewCatalog builds a catalog; category order follows first appearance
func NewCatalog(programs []Program) *Catalog {
	c := &Catalog{programs: make(map[string][]Program)}
	for _, p := range programs {
		if _, ok := c.programs[p.Category]; !ok {
			c.categories = append(c.categories, p.Category)
		}
		c.programs[p.Category] = append(c.programs[p.Category], p)
	}
	return c
}

// Categories lists category keys in catalog order
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// All returns every program in catalog order
func (c *Catalog) All() []Program {
	var out []Program
	for _, cat := range c.categories {
		out = append(out, c.programs[cat]...)
	}
	return out
}

// Len is the number of programs
func (c *Catalog) Len() int {
	n := 0
	for _, ps := range c.programs {
		n += len(ps)
	}
	return n
}

// Get finds a program by id
func (c *Catalog) Get(id string) (Program, bool) {
	for _, cat := range c.categories {
		for _, p := range c.programs[cat] {
			if p.ID == id {
				return p, true
			}
		}
	}
	return Program{}, false
}

// ForSkill returns the programs covering skill, in catalog order
func (c *Catalog) ForSkill(skill string) []Program {
	var out []Program
	for _, p := range c.All() {
		if p.Covers(skill) {
			out = append(out, p)
		}
	}
	return out
}

// CategoryListing is one category of the formatted catalog
type CategoryListing struct {
	Key          string    `json:"key"`
	CategoryName string    `json:"categoryName"`
	Programs     []Program `json:"programs"`
	ProgramCount int       `json:"programCount"`
}

// Listing is the catalog formatted for clients
type Listing struct {
	Catalog       []CategoryListing `json:"catalog"`
	TotalPrograms int               `json:"totalPrograms"`
	Categories    []string          `json:"categories"`
}

// List formats the catalog. category "" or "all" lists everything; an unknown
// category yields a single empty listing.
func (c *Catalog) List(category string) Listing {
	keys := c.categories
	if category != "" && category != "all" {
		keys = []string{category}
	}

	listing := Listing{Catalog: []CategoryListing{}, Categories: []string{}}
	for _, key := range keys {
		programs := c.programs[key]
		if programs == nil {
			programs = []Program{}
		}
		listing.Catalog = append(listing.Catalog, CategoryListing{
			Key:          key,
			CategoryName: categoryTitle(key),
			Programs:     programs,
			ProgramCount: len(programs),
		})
		listing.Categories = append(listing.Categories, key)
		listing.TotalPrograms += len(programs)
	}
	return listing
}

// categoryTitle turns "cloud_computing" into "Cloud Computing"
func categoryTitle(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// SkillNames returns the sorted, de-duplicated set of skills the catalog teaches
func (c *Catalog) SkillNames() []string {
	seen := make(map[string]string)
	for _, p := range c.All() {
		for _, s := range p.Skills {
			key := strings.ToLower(s)
			if _, ok := seen[key]; !ok {
				seen[key] = s
			}
		}
	}
	out := make([]string, 0, len(seen))
	for _, s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// DefaultCatalog returns the built-in program catalog
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultPrograms)
}

var defaultPrograms = []Program{
	{
		ID: "aws_solutions_architect", Title: "AWS Solutions Architect Associate",
		Provider: "Amazon Web Services", Category: "cloud_computing",
		DurationHours: 60, Difficulty: Intermediate, Cost: 150, Certification: true,
		CertName:      "AWS Certified Solutions Architect - Associate",
		Skills:        []string{"AWS", "Cloud Architecture", "EC2", "S3", "VPC", "IAM"},
		Prerequisites: []string{"Basic Cloud Knowledge", "Networking Fundamentals"},
		MarketDemand:  95, CareerImpact: ImpactHigh, Rating: 4.8,
		URL: "https://aws.amazon.com/certification/certified-solutions-architect-associate/",
	},
	{
		ID: "azure_fundamentals", Title: "Microsoft Azure Fundamentals",
		Provider: "Microsoft", Category: "cloud_computing",
		DurationHours: 40, Difficulty: Beginner, Cost: 99, Certification: true,
		CertName:      "Microsoft Certified: Azure Fundamentals",
		Skills:        []string{"Azure", "Cloud Concepts", "Azure Services", "Security"},
		Prerequisites: []string{},
		MarketDemand:  90, CareerImpact: ImpactHigh, Rating: 4.7,
		URL: "https://docs.microsoft.com/en-us/learn/certifications/azure-fundamentals/",
	},
	{
		ID: "kubernetes_fundamentals", Title: "Kubernetes Fundamentals",
		Provider: "Linux Foundation", Category: "cloud_computing",
		DurationHours: 50, Difficulty: Intermediate, Cost: 199, Certification: true,
		CertName:      "Certified Kubernetes Administrator (CKA)",
		Skills:        []string{"Kubernetes", "Container Orchestration", "Docker", "DevOps"},
		Prerequisites: []string{"Docker Basics", "Linux Commands"},
		MarketDemand:  88, CareerImpact: ImpactHigh, Rating: 4.6,
		URL: "https://training.linuxfoundation.org/certification/certified-kubernetes-administrator-cka/",
	},
	{
		ID: "nodejs_complete", Title: "Complete Node.js Developer Course",
		Provider: "Udemy", Category: "programming",
		DurationHours: 35, Difficulty: Intermediate, Cost: 89.99,
		Skills:        []string{"Node.js", "Express.js", "MongoDB", "RESTful APIs"},
		Prerequisites: []string{"JavaScript Basics"},
		MarketDemand:  85, CareerImpact: ImpactHigh, Rating: 4.7,
		URL: "https://www.udemy.com/course/the-complete-nodejs-developer-course-2/",
	},
	{
		ID: "react_complete", Title: "Complete React Developer Course",
		Provider: "Udemy", Category: "programming",
		DurationHours: 40, Difficulty: Intermediate, Cost: 94.99,
		Skills:        []string{"React", "Redux", "React Hooks", "Context API"},
		Prerequisites: []string{"JavaScript ES6", "HTML/CSS"},
		MarketDemand:  92, CareerImpact: ImpactHigh, Rating: 4.8,
		URL: "https://www.udemy.com/course/react-the-complete-guide-incl-redux/",
	},
	{
		ID: "python_data_science", Title: "Python for Data Science and Machine Learning",
		Provider: "Coursera", Category: "programming",
		DurationHours: 60, Difficulty: Intermediate, Cost: 49, Certification: true,
		CertName:      "Python for Data Science Specialization",
		Skills:        []string{"Python", "Pandas", "NumPy", "Matplotlib", "Scikit-learn"},
		Prerequisites: []string{"Python Basics"},
		MarketDemand:  89, CareerImpact: ImpactHigh, Rating: 4.6,
		URL: "https://www.coursera.org/specializations/python-data-science",
	},
	{
		ID: "postgresql_mastery", Title: "PostgreSQL Database Administration",
		Provider: "PostgreSQL Global Development Group", Category: "database",
		DurationHours: 45, Difficulty: Intermediate, Cost: 0,
		Skills:        []string{"PostgreSQL", "Database Design", "SQL Optimization", "Backup & Recovery"},
		Prerequisites: []string{"SQL Basics"},
		MarketDemand:  78, CareerImpact: ImpactMedium, Rating: 4.5,
		URL: "https://www.postgresql.org/docs/current/tutorial.html",
	},
	{
		ID: "mongodb_developer", Title: "MongoDB Developer Certification",
		Provider: "MongoDB University", Category: "database",
		DurationHours: 30, Difficulty: Intermediate, Cost: 150, Certification: true,
		CertName:      "MongoDB Certified Developer Associate",
		Skills:        []string{"MongoDB", "NoSQL", "Aggregation Pipeline", "Indexing"},
		Prerequisites: []string{"Database Fundamentals"},
		MarketDemand:  82, CareerImpact: ImpactMedium, Rating: 4.4,
		URL: "https://university.mongodb.com/certification",
	},
	{
		ID: "machine_learning_basics", Title: "Machine Learning Fundamentals",
		Provider: "Stanford Online", Category: "ai_ml",
		DurationHours: 55, Difficulty: Intermediate, Cost: 0, Certification: true,
		CertName:      "Machine Learning Certificate",
		Skills:        []string{"Machine Learning", "Python", "TensorFlow", "Data Analysis"},
		Prerequisites: []string{"Python", "Statistics", "Linear Algebra"},
		MarketDemand:  94, CareerImpact: ImpactHigh, Rating: 4.9,
		URL: "https://www.coursera.org/learn/machine-learning",
	},
	{
		ID: "ai_for_everyone", Title: "AI for Everyone",
		Provider: "deeplearning.ai", Category: "ai_ml",
		DurationHours: 25, Difficulty: Beginner, Cost: 49, Certification: true,
		CertName:      "AI for Everyone Certificate",
		Skills:        []string{"AI Concepts", "Machine Learning Basics", "AI Strategy"},
		Prerequisites: []string{},
		MarketDemand:  91, CareerImpact: ImpactMedium, Rating: 4.7,
		URL: "https://www.coursera.org/learn/ai-for-everyone",
	},
}
