package util

import "strings"

// technicalSkills is the vocabulary matched against resumes and job texts.
var technicalSkills = []string{
	// Programming languages
	"javascript", "typescript", "python", "java", "c#", "c++", "ruby", "php", "swift", "kotlin", "go", "rust", "scala", "matlab", "perl", "shell", "bash", "powershell",

	// Frontend
	"react", "angular", "vue", "vue.js", "svelte", "ember", "backbone", "jquery", "html", "css", "sass", "scss", "less", "bootstrap", "tailwind", "material-ui", "chakra-ui",

	// Backend
	"node.js", "express", "fastify", "koa", "django", "flask", "fastapi", "spring", "spring boot", "asp.net", "laravel", "symfony", "rails", "sinatra", "gin", "echo",

	// Databases
	"mongodb", "mysql", "postgresql", "sqlite", "redis", "elasticsearch", "cassandra", "dynamodb", "firebase", "firestore", "oracle", "sql server", "mariadb", "neo4j",

	// Cloud
	"aws", "azure", "gcp", "google cloud", "heroku", "vercel", "netlify", "digitalocean", "linode", "cloudflare",

	// DevOps and tooling
	"docker", "kubernetes", "jenkins", "gitlab ci", "github actions", "terraform", "ansible", "chef", "puppet", "vagrant", "nginx", "apache", "linux", "ubuntu", "centos",

	// Version control
	"git", "github", "gitlab", "bitbucket", "svn", "mercurial",

	// Testing
	"jest", "mocha", "chai", "cypress", "selenium", "pytest", "junit", "testng", "rspec", "phpunit",

	// Mobile
	"react native", "flutter", "ionic", "xamarin", "cordova", "phonegap", "android", "ios", "objective-c",

	// Data science and ML
	"machine learning", "deep learning", "tensorflow", "pytorch", "scikit-learn", "pandas", "numpy", "matplotlib", "seaborn", "jupyter", "anaconda", "spark", "hadoop",

	// Methodologies
	"agile", "scrum", "kanban", "devops", "ci/cd", "tdd", "bdd", "microservices", "serverless", "rest", "graphql", "soap", "api",

	// Design
	"figma", "sketch", "adobe xd", "photoshop", "illustrator", "invision", "zeplin", "principle", "framer",
}

// ExtractTechnicalSkills returns the vocabulary skills that appear in the
// text. Dotted and spaced variants (node.js vs nodejs, react native vs
// reactnative) are matched too.
func ExtractTechnicalSkills(text string) []string {
	if text == "" {
		return nil
	}
	textLower := strings.ToLower(text)

	var found []string
	seen := make(map[string]struct{})
	for _, skill := range technicalSkills {
		if _, ok := seen[skill]; ok {
			continue
		}
		if strings.Contains(textLower, skill) ||
			strings.Contains(textLower, strings.ReplaceAll(skill, ".", "")) ||
			strings.Contains(textLower, strings.ReplaceAll(skill, " ", "")) {
			seen[skill] = struct{}{}
			found = append(found, skill)
		}
	}
	return found
}
