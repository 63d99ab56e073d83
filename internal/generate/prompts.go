package generate

// Prompt templates for the three generation calls. Each instructs the
// model to return only JSON; the extractor tolerates surrounding prose
// anyway.

const outputSchemaPromptTemplate = `You are an expert API architect. Convert the user's API requirement into a clean JSON Schema.

Requirements:
- Must be valid JSON.
- Only output the schema object, nothing else.
- Use correct JSON Schema types (string, number, boolean, object, array).
- Infer nested objects if needed.

User Requirement:
"""%s"""

Return ONLY JSON.`

const inputSchemaPromptTemplate = `You are an API integration expert. Use the existing API details below to generate a valid JSON Schema for its input request.

Existing API Details:
%s

Rules:
- Include all required fields.
- Include optional fields.
- Use JSON Schema format.
- Output only pure JSON.

Return ONLY JSON.`

const mappingPromptTemplate = `You are a senior API integration expert.

Your task:
Map fields from a NEW custom API's output schema TO the fields in an EXISTING API's output schema.

The goal:
Tell the developer exactly which field in the EXISTING API output should fill which field in the NEW CUSTOM API output.

Output Format (strict JSON):
{
  "mappings": [
    {
      "custom_path": "<path in custom_output_schema>",
      "existing_path": "<path in existing_output_schema>",
      "transformation": "<optional transformation or null>"
    }
  ]
}

Rules:
- custom_path must point to a field in custom_output_schema.
- existing_path must point to a field in existing_output_schema.
- If a field matches exactly, transformation = null.
- If any format conversion is required, mention it briefly.
- Return ONLY valid JSON.

Custom Output Schema:
%s

Existing Output Schema:
%s`
