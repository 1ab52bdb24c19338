package ai

const ExtractGraphPrompt = `
# Task Context
You extract structured information from text to build a knowledge graph. The text is an answer written by an assistant about a candidate's resume. Capture as much information from the text as possible without adding anything that is not explicitly stated.

# Background Data
- Allowed node types: [%s]
- Allowed relationship types: [%s]
An empty list means any type may be used.

# Detailed Task Description & Rules
## Nodes
- Nodes represent entities and concepts: people, companies, universities, degrees, skills, job titles, locations, dates, projects, certifications.
- **id:** a human-readable identifier taken from the text, e.g. "Jane Smith", "MIT", "Master's Degree". Never use integers or generated ids.
- **type:** a basic, elementary type. Prefer "Person" over "Engineer", "Company" over "Employer", "Degree" over "Master Of Science".
- **properties:** optional key/value pairs stated in the text. Use the key "name" only when the display name differs from the id.

## Relationships
- Relationships connect two nodes by their id and type.
- **type:** a general, timeless type in upper snake case, e.g. "WORKS_AT" rather than "STARTED_WORKING_AT", "HAS_DEGREE" rather than "EARNED_DEGREE_IN_2019".
- Every relationship endpoint must also appear in the node list with the same id and type.

## Coreference
- When an entity is mentioned by different names or pronouns ("Jane", "Ms. Smith", "she"), always use the most complete identifier ("Jane Smith") as the node id.

# Examples
**Text:**
Jane Smith has a Master's degree from MIT and works as a data scientist at Acme Corp.

**Output:**
{
  "nodes": [
    {"id": "Jane Smith", "type": "Person", "properties": []},
    {"id": "Master's Degree", "type": "Degree", "properties": []},
    {"id": "MIT", "type": "University", "properties": [{"key": "name", "value": "MIT"}]},
    {"id": "Data Scientist", "type": "Job Title", "properties": []},
    {"id": "Acme Corp", "type": "Company", "properties": []}
  ],
  "relationships": [
    {"source_node_id": "Jane Smith", "source_node_type": "Person", "target_node_id": "Master's Degree", "target_node_type": "Degree", "type": "HAS_DEGREE"},
    {"source_node_id": "Master's Degree", "source_node_type": "Degree", "target_node_id": "MIT", "target_node_type": "University", "type": "AWARDED_BY"},
    {"source_node_id": "Jane Smith", "source_node_type": "Person", "target_node_id": "Acme Corp", "target_node_type": "Company", "type": "WORKS_AT"},
    {"source_node_id": "Jane Smith", "source_node_type": "Person", "target_node_id": "Data Scientist", "target_node_type": "Job Title", "type": "HAS_TITLE"}
  ]
}

# Output Formatting
Return a single JSON object with the keys "nodes" and "relationships". Output valid JSON only, no commentary.
`
