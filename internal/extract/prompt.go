package extract

import "fmt"

// BuildExtractionPrompt returns the fixed instruction that asks the model to
// split OCR text into normalized URLs and message content.
func BuildExtractionPrompt(ocrText string) string {
	return fmt.Sprintf(`You are an AI assistant highly skilled at analyzing OCR output and extracting information relevant to phishing and spam detection.
Read the following text, which came from OCR of a screenshot, then:
1. Identify and extract ALL strings that are URLs or links.
2. Identify and extract ALL relevant text segments that are NOT URLs (this is likely message content such as an SMS).

For URL EXTRACTION, note:
- URLs come in many forms: starting with http://, https://, www., or just domain.tld (for example, example.com).
- Also recognize non-HTTP schemes such as wa.me/, ftp://, mailto:, and similar.
- The OCR text may contain mistakes. Try to correct common URL corruption (for example, "http:ll" to "http://", "example. com" to "example.com", "g00gle.com" to "google.com").
- For every extracted URL, include the corrected "url" and, when identifiable, the "original_ocr_snippet" (the original OCR fragment the URL was found in).

For TEXT CONTENT EXTRACTION (NON-URL), note:
- Focus on text that reads like a message, promotion, instruction, or information typically sent over SMS or messaging platforms.
- Ignore very short, meaningless, or UI-chrome text (for example, "Text Message", "Today 5:03 PM", carrier names), unless it is an inseparable part of the main message.
- "message_text" must be ONE SINGLE STRING containing all relevant text found. If there are several relevant lines or paragraphs, join them into one string using newline characters where that keeps it readable.

OCR text:
---
%s
---

Return output ONLY in the following JSON format.
- If no URLs are found, "extracted_urls" must be an empty list and "contains_urls" must be false.
- If no relevant non-URL text content is found, "message_text" must be an empty string and "contains_text" must be false.

{
  "extracted_urls": [
    {
      "url": "corrected_url_1",
      "original_ocr_snippet": "optional_original_ocr_fragment_1"
    }
  ],
  "message_text": "single_string_of_all_relevant_message_text",
  "contains_urls": false,
  "contains_text": false
}
Make sure the output is valid JSON with no explanatory text outside the JSON block.`, ocrText)
}
