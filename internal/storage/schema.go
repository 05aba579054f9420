package storage

const schema = `
-- The 'questions' table stores every extracted question/answer pair under its subject label.
CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    subject TEXT NOT NULL
);
`
