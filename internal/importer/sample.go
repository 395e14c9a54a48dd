package importer

// SampleCSVFileName is the download name offered for the sample document.
const SampleCSVFileName = "sample_books.csv"

// SampleCSV is the reference import document handed to admins. The header
// ordering and the Python-literal-list convention for genres, characters and
// awards are the de facto file format; importers round-trip this exact shape.
const SampleCSV = `title,author,description,genres,publisher,price,publishDate,coverImg,isbn,pages,language,edition,bookFormat,characters,awards
"Sample Book 1","John Doe","This is a sample book description","['Fiction', 'Adventure']","Sample Publisher","19.99","2024-01-01","https://example.com/cover1.jpg","9781234567890","300","English","First Edition","Paperback","['Main Character', 'Supporting Character']","['Sample Award 2024']"
"Sample Book 2","Jane Smith","Another sample book","['Non-Fiction', 'Biography']","Another Publisher","29.99","2023-06-01","https://example.com/cover2.jpg","9781234567891","250","English","Second Edition","Hardcover","['Historical Figure']","['Biography Award 2023']"
`
