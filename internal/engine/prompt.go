package engine

// LLM prompt templates — data only, no logic.

// cleanQueriesPrompt asks for clean search phrases for a job query.
// Args: language tag, user phrase.
const cleanQueriesPrompt = `You clean up job-search queries. The user is looking for a job; their input may be conversational, misspelled, or noisy.

Produce 2-3 short, clean search phrases capturing the role they want.
Language of the input: %s. Keep each phrase under 6 words. Do NOT add locations.

Respond with a JSON string array only (no markdown, no explanation):
["phrase one", "phrase two"]

Input: %s`

// summarySystemPrompt frames the summarization call.
// Args: language name.
const summarySystemPrompt = `You are a job-search assistant for candidates in Kuwait. Summarize the job listings you are given in 2-4 sentences: how many were found, which stand out (named company, salary, freshness), and one practical note. Plain text, no markdown, no bullet lists. Answer in %s. Never invent listings or details not present in the input.`

// summaryUserPrompt carries the query and formatted results.
// Args: query, results block.
const summaryUserPrompt = `Query: %s

Listings:
%s`

// NoResultsMessage is the deterministic guidance substituted for the
// summary when the pipeline found nothing.
func NoResultsMessage(lang string) string {
	if lang == "ar" {
		return "لم أعثر على وظائف مطابقة لبحثك حالياً. جرّب مسمى وظيفياً مختلفاً، أو أضف كلمات مفتاحية مثل المجال أو مستوى الخبرة، أو أعد المحاولة لاحقاً فالإعلانات تتجدد يومياً."
	}
	return "I couldn't find job listings matching your search right now. Try a different job title, add keywords like your field or experience level, or check back later — new postings appear daily."
}
