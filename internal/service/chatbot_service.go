package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/careerbloom/backend/internal/model"
	"github.com/careerbloom/backend/internal/vectorstore"
)

const relevantJobsLimit = 8

// Intent labels for user queries.
const (
	IntentJobSearch     = "job_search"
	IntentCareerAdvice  = "career_advice"
	IntentResumeHelp    = "resume_help"
	IntentInterviewPrep = "interview_prep"
	IntentGeneral       = "general"
)

var (
	jobSearchKeywords = []string{
		"job", "jobs", "position", "positions", "opening", "openings",
		"vacancy", "vacancies", "opportunity", "opportunities", "hire", "hiring",
		"find job", "find a job", "search job", "looking for job", "apply",
		"employment", "work", "career",
	}
	careerAdviceKeywords = []string{
		"advice", "career path", "growth", "progress", "advance", "promotion",
		"skill", "skills", "improve", "learn", "develop", "education", "training",
		"certificate", "certification", "degree", "career change", "switch career",
	}
	resumeHelpKeywords = []string{
		"resume", "cv", "curriculum vitae", "profile", "portfolio",
		"improve resume", "fix resume", "update resume", "review resume",
	}
	interviewPrepKeywords = []string{
		"interview", "interviewing", "question", "questions", "answer",
		"prepare", "preparation", "practice", "behavioral", "technical",
	}
)

// ChatRequest carries a user message plus the optional job and resume the
// question is about.
type ChatRequest struct {
	Query      string
	ResumeText string
	Job        *model.Job
}

// ChatbotService answers career questions with retrieval-augmented LLM
// responses, falling back to rule-based answers when the LLM is unavailable.
type ChatbotService struct {
	retrieval *RetrievalService
	llm       ChatResponderInterface
	useLLM    bool
}

func NewChatbotService(retrieval *RetrievalService, llm ChatResponderInterface) *ChatbotService {
	return &ChatbotService{
		retrieval: retrieval,
		llm:       llm,
		useLLM:    llm != nil,
	}
}

// ProcessQuery classifies the query intent, assembles retrieval context and
// produces a response. It always returns a usable answer; internal failures
// degrade to the rule-based path.
func (s *ChatbotService) ProcessQuery(ctx context.Context, req ChatRequest) string {
	intent := classifyIntent(req.Query)

	var info strings.Builder
	if intent == IntentJobSearch {
		jobs := s.fetchRelevantJobs(req.Query)
		if len(jobs) > 0 {
			info.WriteString(formatJobsContext(jobs))
		} else {
			info.WriteString("I don't have specific job listings matching your query at the moment.")
		}
	}
	if req.Job != nil {
		if raw, err := json.Marshal(req.Job); err == nil {
			info.WriteString("\nJob Details: ")
			info.Write(raw)
		}
	}
	if req.ResumeText != "" {
		info.WriteString("\nUser Resume: ")
		info.WriteString(req.ResumeText)
	}

	if s.useLLM {
		answer, err := s.llm.Chat(ctx, buildSystemPrompt(intent, info.String()), req.Query)
		if err == nil {
			return answer
		}
		log.Printf("chatbot: LLM response failed, falling back to rule-based: %v", err)
	}
	return ruleBasedResponse(req.Query, info.String())
}

// fetchRelevantJobs retrieves jobs for the query, widening the query with any
// detected job types and then boosting results toward those types.
func (s *ChatbotService) fetchRelevantJobs(query string) []vectorstore.ScoredResult {
	types := vectorstore.ExtractJobTypes(query)
	enhanced := query
	if len(types) > 0 {
		enhanced = strings.Join(types, " ") + " " + query + " job position role"
	}
	results := s.retrieval.Query(enhanced, relevantJobsLimit)
	return vectorstore.BoostByJobType(results, types)
}

func formatJobsContext(results []vectorstore.ScoredResult) string {
	var b strings.Builder
	b.WriteString("Here are some relevant job opportunities:\n\n")
	for i, r := range results {
		job := r.Job
		title := job.Title
		if title == "" {
			title = "Unknown Position"
		}
		company := job.Company
		if company == "" {
			company = "Unknown Company"
		}
		fmt.Fprintf(&b, "Job %d: %s at %s\n", i+1, title, company)
		if job.Location != "" {
			b.WriteString("Location: " + job.Location)
			if job.Remote {
				b.WriteString(" (Remote)")
			}
			b.WriteString("\n")
		}
		if job.Salary != "" {
			b.WriteString("Salary: " + job.Salary + "\n")
		}
		jobType := job.Type
		if jobType == "" {
			jobType = "Not specified"
		}
		b.WriteString("Type: " + jobType + "\n")
		if len(job.Skills) > 0 {
			b.WriteString("Required Skills: " + strings.Join(job.Skills, ", ") + "\n")
		}
		if job.Description != "" {
			desc := job.Description
			if len(desc) > 150 {
				desc = desc[:150] + "..."
			}
			b.WriteString("Description: " + desc + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func buildSystemPrompt(intent, context string) string {
	var b strings.Builder
	b.WriteString("You are CareerBloom Assistant, a helpful career advisor.\n\n")

	if strings.Contains(context, "Job Details:") && strings.Contains(context, "User Resume:") {
		b.WriteString("When the user provides both a job description and a resume, always answer in the following structured format using clear Markdown:\n\n" +
			"Relevant Experience\n- State whether the user has relevant work experience for the job and briefly explain why or why not.\n\n" +
			"Seniority\n- State whether the user's seniority matches the job requirements and briefly explain.\n\n" +
			"Education\n- State whether the user's education matches the job requirements and briefly explain.\n\n" +
			"Core Skills\n- **Aligned Skills:** list the user's skills that match the job requirements.\n- **Not Aligned Skills:** list missing or weak skills.\n\n" +
			"At the end, provide a short summary of fit and actionable advice.\n\n" +
			"Never output raw JSON or unformatted text. Always use Markdown for clarity.\n")
	} else {
		b.WriteString("Always format your answers using clear Markdown structure:\n" +
			"- Use headings (###) for the job or main section.\n" +
			"- Use bullet points for skills, requirements, and advice.\n" +
			"- Use bold for job title, company, and key advice.\n" +
			"- At the end, provide a summary and actionable advice in a separate section.\n" +
			"- Never output raw JSON or unformatted text. Always use Markdown for clarity.\n")
	}

	switch intent {
	case IntentJobSearch:
		b.WriteString("You help users find suitable job opportunities and provide career guidance. ")
	case IntentResumeHelp:
		b.WriteString("You provide expert advice on resume writing and optimization. ")
	case IntentInterviewPrep:
		b.WriteString("You help users prepare for job interviews with practical advice and tips. ")
	case IntentCareerAdvice:
		b.WriteString("You provide personalized career development advice and guidance. ")
	}
	if context != "" {
		b.WriteString("Use the following information to inform your response: " + context)
	}
	return b.String()
}

// classifyIntent counts keyword hits per intent and picks the highest; ties
// resolve in the order job search, career advice, resume help, interview prep.
func classifyIntent(query string) string {
	queryLower := strings.ToLower(query)
	count := func(keywords []string) int {
		n := 0
		for _, kw := range keywords {
			if strings.Contains(queryLower, kw) {
				n++
			}
		}
		return n
	}

	jobSearch := count(jobSearchKeywords)
	careerAdvice := count(careerAdviceKeywords)
	resumeHelp := count(resumeHelpKeywords)
	interviewPrep := count(interviewPrepKeywords)

	max := jobSearch
	for _, n := range []int{careerAdvice, resumeHelp, interviewPrep} {
		if n > max {
			max = n
		}
	}
	switch {
	case max == 0:
		return IntentGeneral
	case max == jobSearch:
		return IntentJobSearch
	case max == careerAdvice:
		return IntentCareerAdvice
	case max == resumeHelp:
		return IntentResumeHelp
	default:
		return IntentInterviewPrep
	}
}

// ruleBasedResponse is the canned-answer fallback used when no LLM is
// configured or the LLM call fails.
func ruleBasedResponse(query, context string) string {
	if strings.TrimSpace(query) == "" {
		return "How can I help with your career today?"
	}

	intent := classifyIntent(query)
	queryLower := strings.ToLower(query)
	hasJobContext := strings.Contains(context, "job opportunities") || strings.Contains(context, "job listings")

	switch intent {
	case IntentJobSearch:
		if hasJobContext {
			return context + "\n\nBased on the available job listings, I'd recommend focusing on the positions that best match your skills and experience. Look for positions where your key qualifications align with the job requirements. Consider factors like location, company culture, and growth opportunities when evaluating these positions."
		}
		if containsAny(queryLower, "frontend", "front end", "react") {
			return "For frontend developer positions, focus on strengthening your skills in modern JavaScript frameworks like React, Vue, or Angular. Build a portfolio that showcases responsive designs and interactive web applications. Highlight your experience with CSS frameworks, state management, and performance optimization techniques."
		}
		if containsAny(queryLower, "backend", "back end", "java", "python") {
			return "For backend developer roles, emphasize your experience with server-side languages like Java, Python, or Node.js. Highlight your knowledge of databases, API design, and server architecture. Showcase projects that demonstrate your understanding of security best practices, performance optimization, and scalable systems."
		}
		return "To find the right job opportunity, start by clearly defining your career goals, skills, and preferred work environment. Tailor your resume and cover letter for each application, highlighting relevant experience and achievements. Expand your search across multiple platforms, including company websites, job boards, and professional networks. Consider working with recruiters who specialize in your field for access to unadvertised positions."

	case IntentResumeHelp:
		if containsAny(queryLower, "ats", "tracking") {
			return "To make your resume ATS-friendly, use a clean, simple format without tables or graphics that could confuse the system. Include keywords from the job description that match your skills and experience. Use standard section headings like \"Experience,\" \"Education,\" and \"Skills.\" Submit your resume as a Word document or simple PDF unless otherwise specified."
		}
		if containsAny(queryLower, "summary", "profile") {
			return "A strong professional summary should be 3-4 sentences that highlight your years of experience, relevant skills, significant achievements, and career goals. Tailor it to each position by emphasizing qualifications that align with the job requirements. Think of it as your elevator pitch that gives hiring managers a quick overview of your value proposition."
		}
		return "To create an effective resume, focus on highlighting your achievements rather than just listing responsibilities. Use strong action verbs and include measurable results when possible. Tailor your resume for each application by matching your qualifications to the job description. Keep the format clean and consistent, and ensure there are no spelling or grammatical errors. Include a professional summary, relevant skills, work experience, and education in a reverse chronological order."

	case IntentInterviewPrep:
		if containsAny(queryLower, "common", "typical") {
			return "Common interview questions include: \"Tell me about yourself,\" \"Why do you want this job?\", \"What are your strengths and weaknesses?\", \"Describe a challenge you faced and how you overcame it,\" and \"Where do you see yourself in five years?\" Prepare concise, structured answers with specific examples from your experience. Practice your responses but avoid memorizing them word-for-word to maintain authenticity."
		}
		if containsAny(queryLower, "technical", "coding") {
			return "For technical interviews, review fundamental concepts in your field and practice solving problems aloud to demonstrate your thought process. Study the company's tech stack and be prepared to discuss relevant experience. When faced with a challenging question, break it down into smaller parts and communicate your approach clearly. It's okay to ask clarifying questions or admit when you don't know something, but follow up with how you would find the answer."
		}
		return "Prepare for your interview by researching the company, understanding the role, and preparing specific examples that showcase your relevant skills and experiences. Practice common questions using the STAR method (Situation, Task, Action, Result) to structure your responses. Prepare thoughtful questions to ask the interviewer about the role, team, and company. On interview day, arrive early, dress professionally, and follow up with a thank-you note expressing your continued interest in the position."

	case IntentCareerAdvice:
		if containsAny(queryLower, "switch", "change", "transition") {
			return "When changing careers, start by identifying transferable skills from your current role that apply to your target field. Fill knowledge gaps through courses, certifications, or side projects. Update your resume to emphasize relevant experience and skills for the new field. Network with professionals in your target industry to gain insights and potential opportunities. Consider starting with a hybrid role that bridges your current experience and desired path, or taking on projects in your current job that develop skills needed for your new direction."
		}
		if containsAny(queryLower, "promotion", "advance", "growth") {
			return "To advance in your career, take initiative by seeking additional responsibilities and leadership opportunities. Set clear goals and regularly discuss your career aspirations with your manager. Continuously develop relevant skills through training, certifications, or advanced education. Build a strong professional network within and outside your organization. Document your achievements and their impact on the business to make a strong case for promotion when opportunities arise."
		}
		return "For ongoing career development, focus on both technical and soft skills relevant to your industry. Stay updated on industry trends through professional associations, publications, and networking events. Seek feedback regularly and act on it to improve your performance. Find mentors who can provide guidance based on their experience. Take on challenging projects that stretch your abilities and showcase your potential. Consider both vertical growth (promotions) and horizontal growth (new skills or areas) when planning your career path."

	default:
		return "I'm your career assistant, here to help with job searches, resume writing, interview preparation, and career advice. I can provide guidance on finding suitable job opportunities, optimizing your resume for specific roles, preparing for interviews, and developing your professional skills. Let me know what specific career assistance you need, and I'll provide relevant advice and resources."
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
