package docstore

// SampleDocs is a small corpus used by the -samples flag and by tests.
var SampleDocs = map[string]string{
	"python_intro.txt": `Python is a high-level interpreted programming language.
Python is known for its clear and readable syntax. Many developers
prefer Python for data science, web development and automation.
Python's philosophy emphasizes code readability.`,

	"data_structures.txt": `Data structures are fundamental in programming. Trees
are hierarchical structures. Dictionaries allow fast search.
Sparse matrices save memory by storing only non-zero values.
Python provides efficient implementations of these structures.`,

	"algorithms.txt": `Search algorithms are essential for retrieving information.
Binary search works on sorted data. Hash algorithms
allow constant-time search. Python includes optimized algorithms
in its standard libraries for sorting and searching.`,

	"web_development.txt": `Python is popular for web development. Frameworks like Django and Flask
facilitate the creation of web applications. Python allows connecting
databases, creating REST APIs and generating dynamic content.
Web development with Python is fast and efficient.`,

	"machine_learning.txt": `Python dominates the field of machine learning and artificial intelligence.
Libraries like TensorFlow, PyTorch and scikit-learn facilitate the development
of models. Python is the preferred language for data processing
and building neural networks. Data analysis with Python is powerful.`,
}

// SampleOrder lists SampleDocs keys in a fixed load order so runs are
// reproducible.
var SampleOrder = []string{
	"python_intro.txt",
	"data_structures.txt",
	"algorithms.txt",
	"web_development.txt",
	"machine_learning.txt",
}
