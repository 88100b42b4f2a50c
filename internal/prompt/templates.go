package prompt

// Templates for the generation operations. Each contains the reserved
// {text} placeholder; the quiz template also takes {count} and
// {difficulty}.

const SummaryTemplate = `You are a study assistant. Write a clear, concise summary of the following document. Focus on the main ideas and keep the summary to a few paragraphs of plain prose.

Document:
{text}

Summary:`

const KeyPointsTemplate = `You are a study assistant. Extract the most important key points from the following document. Return them as a plain bulleted list, one point per line, most important first. Do not add commentary before or after the list.

Document:
{text}

Key points:`

const QuizTemplate = `You are a study assistant creating a quiz from a document. Generate exactly {count} quiz questions at {difficulty} difficulty based only on the document below.

Respond with a JSON array and nothing else. Each element must have this shape:
{
  "question": "the question text",
  "type": "multiple-choice" | "true-false" | "short-answer",
  "options": ["A", "B", "C", "D"],
  "correct_answer": "the correct answer",
  "explanation": "why the answer is correct",
  "difficulty": "easy" | "medium" | "hard"
}

Rules:
- multiple-choice questions need exactly 4 distinct options, and correct_answer must match one of them exactly.
- true-false questions have correct_answer "True" or "False".
- short-answer questions have no options and a short factual correct_answer.

Document:
{text}`

const ChunkSummaryTemplate = `You are a study assistant. Summarize this section of a longer document in a short paragraph. Keep every important fact; this summary will be combined with summaries of the other sections.

Section:
{text}

Summary:`

const CombineSummariesTemplate = `You are a study assistant. The following are summaries of consecutive sections of one document. Merge them into a single coherent summary of the whole document, removing repetition.

Section summaries:
{text}

Combined summary:`
